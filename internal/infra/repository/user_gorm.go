package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

type UserGormRepository struct {
	*GormRepository[models.User]
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{GormRepository: NewGormRepository[models.User](db)}
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Compile-time check
var _ domain.UserRepository = (*UserGormRepository)(nil)
