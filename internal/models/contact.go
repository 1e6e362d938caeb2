package models

import "time"

type Contact struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:255;not null;index" json:"email"`
	Service string `gorm:"size:255;not null" json:"service"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status string `gorm:"size:20;not null;default:'new';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
