package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

var errEmailTaken = httperr.ErrBusiness("email_already_exists", "An account with this email already exists")

func (s *Service) Register(ctx context.Context, in validators.RegisterInput) (*Session, error) {
	user, err := s.createUser(ctx, in, models.RoleUser)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: &user.ID,
	})

	return s.session(user)
}

// CreateAdmin seeds an administrator. When the email is already registered
// the existing account is returned untouched and created is false.
func (s *Service) CreateAdmin(ctx context.Context, in validators.RegisterInput) (user *models.User, created bool, err error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, false, err
	}

	user, err = s.createUser(ctx, in, models.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *Service) createUser(ctx context.Context, in validators.RegisterInput, role string) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         role,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race against a concurrent sign-up with the same email.
		if errors.Is(err, domain.ErrConstraintViolation) {
			return nil, errEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}
