package auth

import (
	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/auth"
	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

type Service struct {
	users  domain.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenIssuer
	audit  audit.Recorder
}

func NewService(
	users domain.UserRepository,
	hasher *auth.Hasher,
	tokens *auth.TokenIssuer,
	audit audit.Recorder,
) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
	}
}

// Session is what register and login hand back to the client.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
