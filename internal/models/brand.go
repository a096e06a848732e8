// Package models contains data structures for the application's domain models.
package models

import "time"

// Brand represents a fragrance house. Brand rows are server-seeded and
// read-only from the API's perspective.
type Brand struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
