package testimonial

import (
	"context"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/domain/testimonial"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

func (s *Service) UpdateStatus(ctx context.Context, actorID, id uint, next testimonial.Status) (*models.Testimonial, error) {
	var previous string
	t, err := s.repo.Update(ctx, id, func(t *models.Testimonial) error {
		previous = t.Status
		st, err := testimonial.Lifecycle.Transition(testimonial.Status(t.Status), next)
		if err != nil {
			return err
		}
		t.Status = string(st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actorID, audit.ActionTestimonialStatus, t.ID, map[string]string{"from": previous, "to": t.Status})
	return t, nil
}

func (s *Service) Approve(ctx context.Context, actorID, id uint, approved bool) (*models.Testimonial, error) {
	t, err := s.repo.Update(ctx, id, func(t *models.Testimonial) error {
		return testimonial.Approve(t, approved)
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actorID, audit.ActionTestimonialApprove, t.ID, map[string]any{"approved": approved})
	return t, nil
}

func (s *Service) Publish(ctx context.Context, actorID, id uint, published bool) (*models.Testimonial, error) {
	t, err := s.repo.Update(ctx, id, func(t *models.Testimonial) error {
		testimonial.Publish(t, published)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actorID, audit.ActionTestimonialPublish, t.ID, map[string]any{"published": published})
	return t, nil
}

// Delete is open to admins and to the user who submitted the testimonial.
func (s *Service) Delete(ctx context.Context, actor *models.User, id uint) error {
	var photoKey string
	err := s.repo.DeleteIf(ctx, id, func(t *models.Testimonial) error {
		if !actor.IsAdmin() && (t.UserID == nil || *t.UserID != actor.ID) {
			return httperr.ErrBusinessKind(domain.ErrForbidden, "not_owner", "You can only delete your own testimonials")
		}
		photoKey = t.PhotoKey
		return nil
	})
	if err != nil {
		return err
	}

	s.removePhoto(ctx, photoKey)
	s.record(ctx, actor.ID, audit.ActionTestimonialDeleted, id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actorID uint, action string, id uint, meta any) {
	s.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   action,
		Entity:   "testimonial",
		EntityID: &id,
		Metadata: meta,
	})
}
