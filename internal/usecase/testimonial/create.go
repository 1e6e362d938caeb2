package testimonial

import (
	"context"
	"io"

	"github.com/BruksfildServices01/site-backend/internal/domain/testimonial"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

const photoPrefix = "testimonials"

// Create stores a pending, unpublished testimonial. An uploaded photo wins
// over a photo URL given in the payload.
func (s *Service) Create(
	ctx context.Context,
	in validators.TestimonialInput,
	ownerID *uint,
	photo io.Reader,
) (*models.Testimonial, error) {

	t := &models.Testimonial{
		Name:      in.Name,
		Role:      in.Role,
		Company:   in.Company,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Photo:     in.Photo,
		Status:    string(testimonial.InitialStatus()),
		Published: false,
		UserID:    ownerID,
	}

	if photo != nil {
		url, key, err := s.photos.Upload(ctx, photoPrefix, "photo", photo)
		if err != nil {
			return nil, err
		}
		t.Photo, t.PhotoKey = url, key
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.removePhoto(ctx, t.PhotoKey)
		return nil, err
	}
	return t, nil
}

func (s *Service) removePhoto(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.photos.Remove(ctx, key); err != nil {
		s.log.Warn("testimonial photo cleanup failed", "key", key, "err", err)
	}
}
