package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName    string `gorm:"size:50;not null" json:"firstName"`
	LastName     string `gorm:"size:50;not null" json:"lastName"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	Role         string `gorm:"size:20;not null;default:'user'" json:"role"`

	IsActive      bool `gorm:"not null;default:true" json:"isActive"`
	EmailVerified bool `gorm:"not null;default:false" json:"emailVerified"`

	ResetPasswordToken  *string    `gorm:"size:255" json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`

	Avatar string `gorm:"size:500" json:"avatar,omitempty"`
	// AvatarKey is the storage key behind Avatar, kept so the blob can be removed.
	AvatarKey string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
