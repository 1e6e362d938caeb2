package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

type HTTPError struct {
	Success bool                `json:"success"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Detail  string              `json:"error,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Internal hides err unless gin runs in debug mode, which is only the case
// for APP_ENV=development.
func Internal(c *gin.Context, code, message string, err error) {
	body := HTTPError{Code: code, Message: message}
	if err != nil {
		_ = c.Error(err)
		if gin.IsDebugging() {
			body.Detail = err.Error()
		}
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

func Validation(c *gin.Context, fields []domain.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, HTTPError{
		Code:    "validation_failed",
		Message: "Validation failed",
		Errors:  fields,
	})
}

// Respond maps an error returned by a use case onto the response taxonomy.
// notFound names the entity for the 404 message.
func Respond(c *gin.Context, err error, notFound string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		Validation(c, verr.Fields)
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		c.AbortWithStatusJSON(StatusOf(be.Kind), HTTPError{
			Code:    be.Code,
			Message: be.Message,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		Validation(c, []domain.FieldError{{Field: "status", Message: err.Error()}})
	case errors.Is(err, domain.ErrNotFound):
		NotFound(c, "not_found", notFound+" not found")
	case errors.Is(err, domain.ErrConstraintViolation):
		BadRequest(c, "constraint_violation", "The request conflicts with existing data")
	case errors.Is(err, domain.ErrInvalidCredentials):
		Unauthorized(c, "invalid_credentials", "Invalid credentials")
	case errors.Is(err, domain.ErrUnauthenticated):
		Unauthorized(c, "unauthenticated", "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		Forbidden(c, "forbidden", "Access denied")
	default:
		Internal(c, "internal_error", "Internal server error", err)
	}
}

func StatusOf(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, domain.ErrUnauthenticated), errors.Is(kind, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(kind, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, domain.ErrValidation),
		errors.Is(kind, domain.ErrInvalidStatus),
		errors.Is(kind, domain.ErrConstraintViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
