package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/middleware"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func pageFilter(c *gin.Context) domain.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return domain.ListFilter{Page: page, Limit: limit}.Normalize()
}

// listFilter reads page, limit and status. status must belong to the
// entity's domain when given.
func listFilter[S ~string](c *gin.Context, parse func(string) (S, error)) (domain.ListFilter, bool) {
	f := pageFilter(c)

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, err := parse(raw)
		if err != nil {
			httperr.Validation(c, []domain.FieldError{{Field: "status", Message: err.Error()}})
			return domain.ListFilter{}, false
		}
		f.Status = string(st)
	}
	return f.Normalize(), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Respond(c, validators.BindError(err), "")
		return false
	}
	return true
}

// actor is only called behind RequireAuth.
func actor(c *gin.Context) *models.User {
	u, _ := middleware.CurrentUser(c)
	return u
}

func ownerID(c *gin.Context) *uint {
	if u, ok := middleware.CurrentUser(c); ok {
		id := u.ID
		return &id
	}
	return nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
