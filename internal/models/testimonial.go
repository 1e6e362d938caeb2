package models

import "time"

type Testimonial struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Role    string `gorm:"size:100;not null" json:"role"`
	Company string `gorm:"size:150;not null" json:"company"`
	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"type:text;not null" json:"comment"`
	Photo   string `gorm:"size:500" json:"photo,omitempty"`
	// PhotoKey is set when Photo points at an uploaded blob we own.
	PhotoKey string `gorm:"size:255" json:"-"`

	Status    string `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Published bool   `gorm:"not null;default:false;index" json:"published"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
