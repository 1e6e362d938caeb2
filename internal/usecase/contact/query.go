package contact

import (
	"context"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.Page[models.Contact], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Contact, error) {
	return s.repo.GetByID(ctx, id)
}
