package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/httpresp"
	useruc "github.com/BruksfildServices01/site-backend/internal/usecase/user"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

type UserHandler struct {
	svc *useruc.Service
}

func NewUserHandler(svc *useruc.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), actor(c).ID)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}
	httpresp.OK(c, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var p validators.ProfilePayload
	if !bindJSON(c, &p) {
		return
	}
	in, err := validators.Profile(p)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), actor(c).ID, in)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}
	httpresp.OK(c, user)
}

// UploadAvatar expects multipart/form-data with an "avatar" file.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	f, ok := formFile(c, "avatar")
	if !ok {
		return
	}
	if f == nil {
		httperr.Validation(c, []domain.FieldError{{Field: "avatar", Message: "Avatar is required"}})
		return
	}
	defer f.Close()

	user, err := h.svc.SetAvatar(c.Request.Context(), actor(c).ID, f)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}
	httpresp.OK(c, user)
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	user, err := h.svc.RemoveAvatar(c.Request.Context(), actor(c).ID)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}
	httpresp.OK(c, user)
}
