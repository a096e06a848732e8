package models

import "time"

// Profile holds a user's public-facing identity. One row per user, created
// lazily on first login; every field except the key is optional. Username
// uniqueness is enforced by ProfileService before writes.
type Profile struct {
	UserID    uint   `gorm:"primaryKey" json:"user_id"`
	Username  string `gorm:"index" json:"username"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	// SignatureFragranceID must reference a fragrance on the owner's OWNED
	// shelf; enforced by ProfileService, not the schema.
	SignatureFragranceID *uint     `json:"signature_fragrance_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}
