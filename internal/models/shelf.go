package models

import (
	"strings"
	"time"
)

// ShelfStatus classifies a fragrance on a user's shelf.
type ShelfStatus string

const (
	// ShelfOwned marks a fragrance the user owns.
	ShelfOwned ShelfStatus = "OWNED"
	// ShelfWant marks a fragrance the user wants.
	ShelfWant ShelfStatus = "WANT"
	// ShelfTested marks a fragrance the user has tested.
	ShelfTested ShelfStatus = "TESTED"
)

// ParseShelfStatus normalizes a client-provided shelf value. Returns false
// for anything outside the three known statuses.
func ParseShelfStatus(value string) (ShelfStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "OWNED":
		return ShelfOwned, true
	case "WANT":
		return ShelfWant, true
	case "TESTED":
		return ShelfTested, true
	}
	return "", false
}

// ShelfEntry records a user's classification of a fragrance. The combination
// of UserID and FragranceID is unique: a fragrance holds at most one shelf
// status per user, and writes are last-write-wins upserts.
type ShelfEntry struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;uniqueIndex:idx_shelf_user_fragrance" json:"user_id"`
	FragranceID uint        `gorm:"not null;uniqueIndex:idx_shelf_user_fragrance" json:"fragrance_id"`
	Status      ShelfStatus `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Fragrance Fragrance `gorm:"foreignKey:FragranceID" json:"fragrance,omitempty"`
}

// TableName specifies the table name for GORM
func (ShelfEntry) TableName() string {
	return "shelf_entries"
}
