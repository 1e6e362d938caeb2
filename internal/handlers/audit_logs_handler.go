package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/httpresp"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLister interface {
	List(ctx context.Context, f audit.Filter) (domain.Page[models.AuditLog], error)
}

type AuditLogsHandler struct {
	logs AuditLister
}

func NewAuditLogsHandler(logs AuditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	verr := &domain.ValidationError{}
	f.From = parseDay(c.Query("from"), "from", verr)
	f.To = parseDay(c.Query("to"), "to", verr)
	if err := verr.Err(); err != nil {
		httperr.Respond(c, err, "")
		return
	}

	logs, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs", err)
		return
	}
	httpresp.List(c, logs)
}

func parseDay(raw, field string, verr *domain.ValidationError) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(validators.DateLayout, raw)
	if err != nil {
		verr.Add(field, "Use the YYYY-MM-DD format")
		return nil
	}
	return &t
}
