package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/domain/testimonial"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/httpresp"
	"github.com/BruksfildServices01/site-backend/internal/middleware"
	testimonialuc "github.com/BruksfildServices01/site-backend/internal/usecase/testimonial"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

type TestimonialHandler struct {
	svc *testimonialuc.Service
}

func NewTestimonialHandler(svc *testimonialuc.Service) *TestimonialHandler {
	return &TestimonialHandler{svc: svc}
}

// Create accepts JSON, or multipart/form-data with an optional "photo" file.
func (h *TestimonialHandler) Create(c *gin.Context) {
	var p validators.TestimonialPayload
	var photo io.Reader

	if isMultipart(c) {
		if err := c.ShouldBind(&p); err != nil {
			if tooLarge(err) {
				httperr.BadRequest(c, "file_too_large", "The uploaded file is too large")
				return
			}
			httperr.Respond(c, validators.BindError(err), "")
			return
		}
		f, ok := formFile(c, "photo")
		if !ok {
			return
		}
		if f != nil {
			defer f.Close()
			photo = f
		}
	} else if !bindJSON(c, &p) {
		return
	}

	in, err := validators.Testimonial(p)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}

	created, err := h.svc.Create(c.Request.Context(), in, ownerID(c), photo)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}
	httpresp.Created(c, created, "Thank you, your testimonial will be reviewed")
}

// List only honours ?status= for admins; other viewers always get the
// public listing, so their status value is not parsed at all.
func (h *TestimonialHandler) List(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)

	f := pageFilter(c)
	if viewer != nil && viewer.IsAdmin() {
		var ok bool
		if f, ok = listFilter(c, testimonial.Lifecycle.Parse); !ok {
			return
		}
	}

	page, err := h.svc.List(c.Request.Context(), viewer, f)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}
	httpresp.List(c, page)
}

func (h *TestimonialHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)

	found, err := h.svc.Get(c.Request.Context(), viewer, id)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}
	httpresp.OK(c, found)
}

func (h *TestimonialHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p validators.StatusPayload
	if !bindJSON(c, &p) {
		return
	}
	next, err := validators.TestimonialStatus(p)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), actor(c).ID, id, next)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}
	httpresp.OK(c, updated)
}

func (h *TestimonialHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p validators.ApprovePayload
	if !bindJSON(c, &p) {
		return
	}
	approved, err := validators.Approve(p)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}

	updated, err := h.svc.Approve(c.Request.Context(), actor(c).ID, id, approved)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}
	httpresp.OK(c, updated)
}

func (h *TestimonialHandler) Publish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p validators.PublishPayload
	if !bindJSON(c, &p) {
		return
	}
	published, err := validators.Publish(p)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}

	updated, err := h.svc.Publish(c.Request.Context(), actor(c).ID, id, published)
	if err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}
	httpresp.OK(c, updated)
}

func (h *TestimonialHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		httperr.Respond(c, err, "testimonial")
		return
	}
	httpresp.Message(c, "Testimonial deleted")
}

// formFile returns nil, true when the field is absent.
func formFile(c *gin.Context, field string) (multipart.File, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		if tooLarge(err) {
			httperr.BadRequest(c, "file_too_large", "The uploaded file is too large")
			return nil, false
		}
		httperr.Respond(c, validators.BindError(err), "")
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not read the uploaded file", err)
		return nil, false
	}
	return f, true
}
