package models

import "time"

// Rating score bounds.
const (
	RatingMin = 1
	RatingMax = 10
)

// Rating is a user's 1-10 score for a fragrance. The combination of UserID
// and FragranceID is unique; setting a rating twice keeps only the latest
// value.
type Rating struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_rating_user_fragrance" json:"user_id"`
	FragranceID uint      `gorm:"not null;uniqueIndex:idx_rating_user_fragrance" json:"fragrance_id"`
	Score       int       `gorm:"not null" json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidRatingScore reports whether n is inside the accepted rating scale.
func ValidRatingScore(n int) bool {
	return n >= RatingMin && n <= RatingMax
}
