package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles understood by the platform.
const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
	RoleAdmin     = "admin"
)

// User represents a platform account. Passwords are stored as bcrypt hashes only.
// Anonymous users carry a generated AnonymousID instead of credentials.
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Username          string         `gorm:"size:64;index" json:"username"`
	Email             string         `gorm:"size:255;index" json:"email"`
	PasswordHash      string         `gorm:"size:255" json:"-"`
	Role              string         `gorm:"size:16;default:'student'" json:"role"`
	IsAnonymous       bool           `gorm:"default:false" json:"is_anonymous"`
	AnonymousID       string         `gorm:"size:36;index" json:"anonymous_id,omitempty"`
	FirstName         string         `gorm:"size:64" json:"first_name,omitempty"`
	LastName          string         `gorm:"size:64" json:"last_name,omitempty"`
	PreferredLanguage string         `gorm:"size:8;default:'en'" json:"preferred_language"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
