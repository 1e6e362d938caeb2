package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `gorm:"index" json:"user_id"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50;index" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

// All lists every persisted model, in dependency order for migrations.
func All() []any {
	return []any{
		&User{},
		&Contact{},
		&Appointment{},
		&Testimonial{},
		&AuditLog{},
	}
}
