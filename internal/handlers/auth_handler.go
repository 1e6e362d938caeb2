package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/httpresp"
	authuc "github.com/BruksfildServices01/site-backend/internal/usecase/auth"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

type AuthHandler struct {
	svc *authuc.Service
}

func NewAuthHandler(svc *authuc.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var p validators.RegisterPayload
	if !bindJSON(c, &p) {
		return
	}
	in, err := validators.Register(p)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}

	sess, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}
	httpresp.Created(c, sess, "Account created")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var p validators.LoginPayload
	if !bindJSON(c, &p) {
		return
	}
	in, err := validators.Login(p)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}

	sess, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}
	httpresp.OK(c, sess)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), actor(c).ID)
	if err != nil {
		httperr.Respond(c, err, "user")
		return
	}
	httpresp.OK(c, user)
}
