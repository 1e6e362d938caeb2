package testimonial

import (
	"context"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/domain/testimonial"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

// List shows everything to admins; anyone else only sees approved and
// published testimonials, whatever status filter they asked for.
func (s *Service) List(ctx context.Context, viewer *models.User, filter domain.ListFilter) (domain.Page[models.Testimonial], error) {
	if !isAdmin(viewer) {
		filter.Status = string(testimonial.StatusApproved)
		filter.Equals = map[string]any{"published": true}
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, viewer *models.User, id uint) (*models.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !testimonial.IsPublic(t) && !isAdmin(viewer) {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func isAdmin(u *models.User) bool {
	return u != nil && u.IsAdmin()
}
