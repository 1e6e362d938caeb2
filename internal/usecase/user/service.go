package user

import (
	"context"
	"io"
	"log/slog"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

type AvatarStore interface {
	Upload(ctx context.Context, prefix, field string, r io.Reader) (url, key string, err error)
	Remove(ctx context.Context, key string) error
}

type Service struct {
	users   domain.UserRepository
	avatars AvatarStore
	log     *slog.Logger
}

func NewService(users domain.UserRepository, avatars AvatarStore, log *slog.Logger) *Service {
	return &Service{users: users, avatars: avatars, log: log}
}
