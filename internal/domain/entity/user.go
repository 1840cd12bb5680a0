package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/fuelinvoice-api/internal/domain/enum"
)

// User is a station operator who can sign in
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      enum.UserRole  `gorm:"not null;default:0" json:"role"`
	ExpiredAt *time.Time     `json:"expired_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsExpired reports whether the account's expiry has passed at now
func (u *User) IsExpired(now time.Time) bool {
	return u.ExpiredAt != nil && !now.Before(*u.ExpiredAt)
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == enum.UserRoleAdmin
}
