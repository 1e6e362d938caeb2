package domain

import (
	"context"

	"github.com/BruksfildServices01/site-backend/internal/models"
)

type (
	ContactRepository     = Repository[models.Contact]
	TestimonialRepository = Repository[models.Testimonial]
)

type UserRepository interface {
	Repository[models.User]
	// FindByEmail expects an already normalized email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type AppointmentRepository interface {
	Repository[models.Appointment]
	// CreateWithContact stores both rows or neither.
	CreateWithContact(ctx context.Context, ap *models.Appointment, companion *models.Contact) error
}
