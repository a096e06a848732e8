package models

import "time"

// Review length bounds, applied to the trimmed text before any write.
const (
	ReviewMinLen = 10
	ReviewMaxLen = 1000
)

// Review is a user's free-text review of a fragrance. One review per
// (user, fragrance) pair, updated in place via upsert.
type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_review_user_fragrance" json:"user_id"`
	FragranceID uint      `gorm:"not null;uniqueIndex:idx_review_user_fragrance" json:"fragrance_id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Profile carries the reviewer's public fields for display; populated
	// on list reads only.
	Profile *Profile `gorm:"foreignKey:UserID;references:UserID" json:"profile,omitempty"`
}
