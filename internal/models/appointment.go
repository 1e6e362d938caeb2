package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string `gorm:"size:255;not null" json:"client_email"`

	// Date is YYYY-MM-DD and Time is HH:MM, both as submitted by the visitor.
	Date string `gorm:"size:10;not null;index" json:"date"`
	Time string `gorm:"size:8;not null" json:"time"`

	Service string `gorm:"size:255;not null" json:"service"`
	Status  string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
