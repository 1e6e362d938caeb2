package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// Gate resolves bearer tokens to live, active users.
type Gate struct {
	tokens *TokenIssuer
	users  UserLookup
}

func NewGate(tokens *TokenIssuer, users UserLookup) *Gate {
	return &Gate{tokens: tokens, users: users}
}

func (g *Gate) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthenticated)
	}

	claims, err := g.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := g.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", domain.ErrUnauthenticated, id)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user %d is disabled", domain.ErrUnauthenticated, id)
	}

	return user, nil
}
