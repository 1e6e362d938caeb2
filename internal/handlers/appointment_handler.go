package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/domain/appointment"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/httpresp"
	appointmentuc "github.com/BruksfildServices01/site-backend/internal/usecase/appointment"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	svc *appointmentuc.Service
}

func NewAppointmentHandler(svc *appointmentuc.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var p validators.AppointmentPayload
	if !bindJSON(c, &p) {
		return
	}
	in, err := validators.Appointment(p)
	if err != nil {
		httperr.Respond(c, err, "appointment")
		return
	}

	created, err := h.svc.Create(c.Request.Context(), in, ownerID(c))
	if err != nil {
		httperr.Respond(c, err, "appointment")
		return
	}
	httpresp.Created(c, created, "Your appointment request has been received")
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "appointment")
		return
	}
	httpresp.OK(c, found)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	f, ok := listFilter(c, appointment.Lifecycle.Parse)
	if !ok {
		return
	}
	page, err := h.svc.ListMine(c.Request.Context(), actor(c).ID, f)
	if err != nil {
		httperr.Respond(c, err, "appointment")
		return
	}
	httpresp.List(c, page)
}

// ======================================================
// ADMIN
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	f, ok := listFilter(c, appointment.Lifecycle.Parse)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err, "appointment")
		return
	}
	httpresp.List(c, page)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p validators.StatusPayload
	if !bindJSON(c, &p) {
		return
	}
	next, err := validators.AppointmentStatus(p)
	if err != nil {
		httperr.Respond(c, err, "appointment")
		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), actor(c).ID, id, next)
	if err != nil {
		httperr.Respond(c, err, "appointment")
		return
	}
	httpresp.OK(c, updated)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor(c).ID, id); err != nil {
		httperr.Respond(c, err, "appointment")
		return
	}
	httpresp.Message(c, "Appointment deleted")
}
