package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/httpresp"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpresp.Envelope{Success: false, Message: "database unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, httpresp.Envelope{
		Success: true,
		Message: "ok",
		Data:    gin.H{"time": time.Now().UTC()},
	})
}
