package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/domain/contact"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/httpresp"
	contactuc "github.com/BruksfildServices01/site-backend/internal/usecase/contact"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

type ContactHandler struct {
	svc *contactuc.Service
}

func NewContactHandler(svc *contactuc.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var p validators.ContactPayload
	if !bindJSON(c, &p) {
		return
	}
	in, err := validators.Contact(p)
	if err != nil {
		httperr.Respond(c, err, "contact")
		return
	}

	created, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err, "contact")
		return
	}
	httpresp.Created(c, created, "Your message has been sent")
}

func (h *ContactHandler) List(c *gin.Context) {
	f, ok := listFilter(c, contact.Lifecycle.Parse)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err, "contact")
		return
	}
	httpresp.List(c, page)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "contact")
		return
	}
	httpresp.OK(c, found)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p validators.StatusPayload
	if !bindJSON(c, &p) {
		return
	}
	next, err := validators.ContactStatus(p)
	if err != nil {
		httperr.Respond(c, err, "contact")
		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), actor(c).ID, id, next)
	if err != nil {
		httperr.Respond(c, err, "contact")
		return
	}
	httpresp.OK(c, updated)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor(c).ID, id); err != nil {
		httperr.Respond(c, err, "contact")
		return
	}
	httpresp.Message(c, "Contact deleted")
}
