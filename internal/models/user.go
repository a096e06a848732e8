package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authentication account. Public-facing identity
// (username, bio, avatar) lives on the Profile row keyed by the user ID.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
