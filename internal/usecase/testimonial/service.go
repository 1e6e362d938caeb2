package testimonial

import (
	"context"
	"io"
	"log/slog"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/domain"
)

// PhotoStore is satisfied by media.Uploader.
type PhotoStore interface {
	Upload(ctx context.Context, prefix, field string, r io.Reader) (url, key string, err error)
	Remove(ctx context.Context, key string) error
}

type Service struct {
	repo   domain.TestimonialRepository
	photos PhotoStore
	audit  audit.Recorder
	log    *slog.Logger
}

func NewService(
	repo domain.TestimonialRepository,
	photos PhotoStore,
	audit audit.Recorder,
	log *slog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		audit:  audit,
		log:    log,
	}
}
