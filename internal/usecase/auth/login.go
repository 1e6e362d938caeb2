package auth

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

// Login answers ErrInvalidCredentials for an unknown email, a wrong password
// and a disabled account alike.
func (s *Service) Login(ctx context.Context, in validators.LoginInput) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.CompareDummy(in.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, in.Password) || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *Service) Me(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
