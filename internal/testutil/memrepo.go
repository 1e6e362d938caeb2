// Package testutil holds in-memory stand-ins for the gorm repositories.
package testutil

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

// MemRepo implements domain.Repository over a map. T must be a struct with
// an ID uint field; CreatedAt, UpdatedAt and Status are honoured when present.
type MemRepo[T any] struct {
	mu     sync.Mutex
	rows   map[uint]T
	nextID uint
	Now    func() time.Time

	// CreateErr, when set, is returned by the next Create call.
	CreateErr error
}

func NewMemRepo[T any]() *MemRepo[T] {
	return &MemRepo[T]{rows: map[uint]T{}, nextID: 1, Now: time.Now}
}

func (r *MemRepo[T]) Create(ctx context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(entity)
}

func (r *MemRepo[T]) createLocked(entity *T) error {
	if err := r.CreateErr; err != nil {
		r.CreateErr = nil
		return err
	}

	v := reflect.ValueOf(entity).Elem()
	id := r.nextID
	r.nextID++
	v.FieldByName("ID").SetUint(uint64(id))

	now := r.Now()
	setTime(v, "CreatedAt", now)
	setTime(v, "UpdatedAt", now)

	r.rows[id] = *entity
	return nil
}

func (r *MemRepo[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (r *MemRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.Page[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter = filter.Normalize()

	var matched []T
	for _, row := range r.rows {
		if matches(row, filter) {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return idOf(matched[i]) > idOf(matched[j])
	})

	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return domain.NewPage(matched[start:end], total, filter), nil
}

func (r *MemRepo[T]) Update(ctx context.Context, id uint, mutate func(*T) error) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := mutate(&row); err != nil {
		return nil, err
	}
	setTime(reflect.ValueOf(&row).Elem(), "UpdatedAt", r.Now())
	r.rows[id] = row

	out := row
	return &out, nil
}

func (r *MemRepo[T]) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemRepo[T]) DeleteIf(ctx context.Context, id uint, guard func(*T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := guard(&row); err != nil {
		return err
	}
	delete(r.rows, id)
	return nil
}

// Len returns the number of stored rows.
func (r *MemRepo[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func matches(row any, filter domain.ListFilter) bool {
	v := reflect.ValueOf(row)
	if filter.Status != "" {
		f := v.FieldByName("Status")
		if !f.IsValid() || f.String() != filter.Status {
			return false
		}
	}
	for col, want := range filter.Equals {
		f := fieldByColumn(v, col)
		if !f.IsValid() {
			return false
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return false
			}
			f = f.Elem()
		}
		if !reflect.DeepEqual(f.Interface(), want) {
			return false
		}
	}
	return true
}

// fieldByColumn finds user_id as UserID by comparing lower-cased names
// without underscores.
func fieldByColumn(v reflect.Value, col string) reflect.Value {
	key := strings.ReplaceAll(strings.ToLower(col), "_", "")
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.ToLower(t.Field(i).Name) == key {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

func idOf(row any) uint64 {
	return reflect.ValueOf(row).FieldByName("ID").Uint()
}

func setTime(v reflect.Value, field string, t time.Time) {
	if f := v.FieldByName(field); f.IsValid() && f.CanSet() {
		f.Set(reflect.ValueOf(t))
	}
}

// MemUserRepo adds email lookup.
type MemUserRepo struct {
	*MemRepo[models.User]
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{MemRepo: NewMemRepo[models.User]()}
}

func (r *MemUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Email == u.Email {
			return domain.ErrConstraintViolation
		}
	}
	return r.createLocked(u)
}

func (r *MemUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MemAppointmentRepo writes companion contacts into Contacts.
type MemAppointmentRepo struct {
	*MemRepo[models.Appointment]
	Contacts *MemRepo[models.Contact]
}

func NewMemAppointmentRepo(contacts *MemRepo[models.Contact]) *MemAppointmentRepo {
	return &MemAppointmentRepo{MemRepo: NewMemRepo[models.Appointment](), Contacts: contacts}
}

func (r *MemAppointmentRepo) CreateWithContact(ctx context.Context, ap *models.Appointment, companion *models.Contact) error {
	if companion != nil {
		r.Contacts.mu.Lock()
		defer r.Contacts.mu.Unlock()
		if err := r.Contacts.CreateErr; err != nil {
			r.Contacts.CreateErr = nil
			return err
		}
	}

	if err := r.Create(ctx, ap); err != nil {
		return err
	}
	if companion != nil {
		return r.Contacts.createLocked(companion)
	}
	return nil
}

var (
	_ domain.UserRepository        = (*MemUserRepo)(nil)
	_ domain.AppointmentRepository = (*MemAppointmentRepo)(nil)
	_ domain.ContactRepository     = (*MemRepo[models.Contact])(nil)
)

// Audit collects recorded events in memory.
type Audit struct {
	mu     sync.Mutex
	Events []audit.Event
}

func (a *Audit) Record(ctx context.Context, ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Events = append(a.Events, ev)
}

func (a *Audit) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.Events))
	for i, ev := range a.Events {
		out[i] = ev.Action
	}
	return out
}
