package domain

import "context"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ListFilter struct {
	Status string
	// Equals holds extra column = value conditions.
	Equals map[string]any
	Page   int
	Limit  int
}

func (f ListFilter) Normalize() ListFilter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

func (f ListFilter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.Limit
}

type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
	Pages int
}

func NewPage[T any](items []T, total int64, f ListFilter) Page[T] {
	f = f.Normalize()
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return Page[T]{
		Items: items,
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
		Pages: pages,
	}
}

// Repository is the CRUD contract shared by every persisted entity.
// Update loads the row, applies mutate and saves it atomically; a mutate
// error aborts the update and is returned unchanged.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context, filter ListFilter) (Page[T], error)
	Update(ctx context.Context, id uint, mutate func(*T) error) (*T, error)
	Delete(ctx context.Context, id uint) error
	// DeleteIf locks the row and deletes it only when guard returns nil.
	DeleteIf(ctx context.Context, id uint, guard func(*T) error) error
}
