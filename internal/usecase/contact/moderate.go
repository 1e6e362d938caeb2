package contact

import (
	"context"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	domain "github.com/BruksfildServices01/site-backend/internal/domain/contact"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

func (s *Service) UpdateStatus(
	ctx context.Context,
	actorID uint,
	id uint,
	next domain.Status,
) (*models.Contact, error) {

	var previous string
	c, err := s.repo.Update(ctx, id, func(c *models.Contact) error {
		st, err := domain.Lifecycle.Transition(domain.Status(c.Status), next)
		if err != nil {
			return err
		}
		previous = c.Status
		c.Status = string(st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionContactStatus,
		Entity:   "contact",
		EntityID: &c.ID,
		Metadata: map[string]string{"from": previous, "to": c.Status},
	})

	return c, nil
}

func (s *Service) Delete(ctx context.Context, actorID uint, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionContactDeleted,
		Entity:   "contact",
		EntityID: &id,
	})
	return nil
}
