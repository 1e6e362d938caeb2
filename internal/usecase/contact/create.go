package contact

import (
	"context"

	domain "github.com/BruksfildServices01/site-backend/internal/domain/contact"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/notify"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

// Create stores a visitor inquiry and acknowledges it by email.
func (s *Service) Create(ctx context.Context, in validators.ContactInput) (*models.Contact, error) {
	c := &models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Service: in.Service,
		Message: in.Message,
		Status:  string(domain.InitialStatus()),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Message{
		To:       c.Email,
		Name:     c.Name,
		Template: notify.TemplateContact,
		Data: map[string]string{
			"service": c.Service,
			"message": c.Message,
		},
	})

	return c, nil
}
