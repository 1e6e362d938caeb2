package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/models"
)

const (
	ActionContactStatus      = "contact_status_changed"
	ActionContactDeleted     = "contact_deleted"
	ActionAppointmentStatus  = "appointment_status_changed"
	ActionAppointmentDeleted = "appointment_deleted"
	ActionTestimonialStatus  = "testimonial_status_changed"
	ActionTestimonialApprove = "testimonial_moderated"
	ActionTestimonialPublish = "testimonial_published"
	ActionTestimonialDeleted = "testimonial_deleted"
	ActionUserRegistered     = "user_registered"
	ActionEmailSent          = "email_sent"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder writes audit events. Failures are logged, never returned: an
// audit problem must not fail the request that triggered it.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

type Nop struct{}

func (Nop) Record(context.Context, Event) {}

type Logger struct {
	db  *gorm.DB
	log *slog.Logger
}

func New(db *gorm.DB, log *slog.Logger) *Logger {
	return &Logger{db: db, log: log}
}

func (l *Logger) Record(ctx context.Context, ev Event) {
	row := ToModel(ev)
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		l.log.Error("audit write failed", "action", ev.Action, "entity", ev.Entity, "err", err)
	}
}

func ToModel(ev Event) models.AuditLog {
	var meta string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = string(b)
		}
	}

	return models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}
}

type Filter struct {
	Action string
	Entity string
	From   *time.Time
	// To is inclusive of the whole day.
	To    *time.Time
	Page  int
	Limit int
}

func (l *Logger) List(ctx context.Context, f Filter) (domain.Page[models.AuditLog], error) {
	lf := domain.ListFilter{Page: f.Page, Limit: f.Limit}.Normalize()

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[models.AuditLog]{}, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(lf.Limit).
		Offset(lf.Offset()).
		Find(&logs).Error; err != nil {
		return domain.Page[models.AuditLog]{}, err
	}

	return domain.NewPage(logs, total, lf), nil
}
