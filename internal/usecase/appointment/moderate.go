package appointment

import (
	"context"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/domain/appointment"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/notify"
)

var clientTemplates = map[appointment.Status]string{
	appointment.StatusConfirmed: notify.TemplateAppointmentConfirmation,
	appointment.StatusCancelled: notify.TemplateAppointmentCancellation,
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	actorID uint,
	id uint,
	next appointment.Status,
) (*models.Appointment, error) {

	var previous appointment.Status
	ap, err := s.repo.Update(ctx, id, func(ap *models.Appointment) error {
		previous = appointment.Status(ap.Status)
		st, err := appointment.Lifecycle.Transition(previous, next)
		if err != nil {
			return err
		}
		ap.Status = string(st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionAppointmentStatus,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": string(previous), "to": ap.Status},
	})

	current := appointment.Status(ap.Status)
	if current != previous && appointment.NotifiesClient(current) {
		s.notifier.Notify(notify.Message{
			To:       ap.ClientEmail,
			Name:     ap.ClientName,
			Template: clientTemplates[current],
			Data:     emailData(ap),
		})
	}

	return ap, nil
}

// Delete refuses confirmed bookings; the check and the delete share one row lock.
func (s *Service) Delete(ctx context.Context, actorID uint, id uint) error {
	err := s.repo.DeleteIf(ctx, id, func(ap *models.Appointment) error {
		return appointment.CanDelete(appointment.Status(ap.Status))
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionAppointmentDeleted,
		Entity:   "appointment",
		EntityID: &id,
	})
	return nil
}
