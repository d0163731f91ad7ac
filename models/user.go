package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
}

// Session is one login. A user may hold a limited number of active
// sessions; older ones are deactivated, never deleted.
type Session struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt time.Time `json:"expires_at"`
}
