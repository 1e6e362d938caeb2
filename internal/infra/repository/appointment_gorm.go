package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

type AppointmentGormRepository struct {
	*GormRepository[models.Appointment]
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{GormRepository: NewGormRepository[models.Appointment](db)}
}

func (r *AppointmentGormRepository) CreateWithContact(
	ctx context.Context,
	ap *models.Appointment,
	companion *models.Contact,
) error {
	if ap == nil {
		return errNilEntity
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ap).Error; err != nil {
			return err
		}
		if companion == nil {
			return nil
		}
		return tx.Create(companion).Error
	})
	return translate(err)
}

// Compile-time checks
var (
	_ domain.AppointmentRepository = (*AppointmentGormRepository)(nil)
	_ domain.ContactRepository     = (*GormRepository[models.Contact])(nil)
	_ domain.TestimonialRepository = (*GormRepository[models.Testimonial])(nil)
)
