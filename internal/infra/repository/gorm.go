package repository

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

// GormRepository implements domain.Repository for any gorm model with an
// integer primary key, a created_at column and, when filtered on, a status column.
type GormRepository[T any] struct {
	db *gorm.DB
}

func NewGormRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

func (r *GormRepository[T]) Create(ctx context.Context, entity *T) error {
	return translate(r.db.WithContext(ctx).Create(entity).Error)
}

func (r *GormRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func (r *GormRepository[T]) List(ctx context.Context, filter domain.ListFilter) (domain.Page[T], error) {
	filter = filter.Normalize()

	q := r.db.WithContext(ctx).Model(new(T))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	for _, col := range sortedKeys(filter.Equals) {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: filter.Equals[col]})
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[T]{}, translate(err)
	}

	var items []T
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&items).Error; err != nil {
		return domain.Page[T]{}, translate(err)
	}

	return domain.NewPage(items, total, filter), nil
}

func (r *GormRepository[T]) Update(ctx context.Context, id uint, mutate func(*T) error) (*T, error) {
	var (
		entity    T
		mutateErr error
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&entity, id).Error; err != nil {
			return err
		}

		if err := mutate(&entity); err != nil {
			mutateErr = err
			return err
		}

		return tx.Save(&entity).Error
	})
	if mutateErr != nil {
		return nil, mutateErr
	}
	if err != nil {
		return nil, translate(err)
	}

	return &entity, nil
}

func (r *GormRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) DeleteIf(ctx context.Context, id uint, guard func(*T) error) error {
	var guardErr error

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entity T
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&entity, id).Error; err != nil {
			return err
		}

		if err := guard(&entity); err != nil {
			guardErr = err
			return err
		}

		return tx.Delete(&entity).Error
	})
	if guardErr != nil {
		return guardErr
	}
	return translate(err)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var errNilEntity = errors.New("repository: nil entity")
