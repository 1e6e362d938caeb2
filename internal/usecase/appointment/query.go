package appointment

import (
	"context"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.Page[models.Appointment], error) {
	return s.repo.List(ctx, filter)
}

// ListMine returns the bookings made while signed in as userID.
func (s *Service) ListMine(ctx context.Context, userID uint, filter domain.ListFilter) (domain.Page[models.Appointment], error) {
	filter.Equals = map[string]any{"user_id": userID}
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}
