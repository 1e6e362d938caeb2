package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/auth"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

const ContextUser = "user"

// Authenticator is satisfied by auth.Gate.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*models.User, error)
}

func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authorization header must be: Bearer <token>")
			return
		}
		if raw == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authentication required")
			return
		}

		user, err := a.Authenticate(c.Request.Context(), raw)
		if err != nil {
			httperr.Respond(c, err, "user")
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is sent and lets the
// request through anonymously otherwise.
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok && raw != "" {
			if user, err := a.Authenticate(c.Request.Context(), raw); err == nil {
				c.Set(ContextUser, user)
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(permitted auth.RoleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			httperr.Unauthorized(c, "unauthenticated", "Authentication required")
			return
		}
		if !auth.Allowed(user.Role, permitted) {
			httperr.Forbidden(c, "forbidden", "Access denied")
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// bearerToken returns ok=false when a header is present but malformed.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", true
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
