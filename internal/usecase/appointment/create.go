package appointment

import (
	"context"

	"github.com/BruksfildServices01/site-backend/internal/domain/appointment"
	"github.com/BruksfildServices01/site-backend/internal/domain/contact"
	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/notify"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

// Create books a slot. ownerID is set when the visitor was signed in. A
// free-text message also produces a companion contact in the same transaction.
func (s *Service) Create(
	ctx context.Context,
	in validators.AppointmentInput,
	ownerID *uint,
) (*models.Appointment, error) {

	ap := &models.Appointment{
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		Date:        in.Date,
		Time:        in.Time,
		Service:     in.Service,
		Status:      string(appointment.InitialStatus()),
		UserID:      ownerID,
	}

	var companion *models.Contact
	if in.Message != "" {
		companion = &models.Contact{
			Name:    in.ClientName,
			Email:   in.ClientEmail,
			Service: in.Service,
			Message: in.Message,
			Status:  string(contact.InitialStatus()),
		}
	}

	if err := s.repo.CreateWithContact(ctx, ap, companion); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Message{
		To:       ap.ClientEmail,
		Name:     ap.ClientName,
		Template: notify.TemplateAppointmentReceived,
		Data:     emailData(ap),
	})

	return ap, nil
}

func emailData(ap *models.Appointment) map[string]string {
	return map[string]string{
		"date":    ap.Date,
		"time":    ap.Time,
		"service": ap.Service,
	}
}
