package models

import "time"

// Gender categories used by the catalog.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderUnisex = "Unisex"
)

// Fragrance represents a catalog entry. Catalog rows are server-seeded and
// read-only from the API's perspective; per-user state (shelf, rating) lives
// in its own tables and is merged onto the catalog at read time.
type Fragrance struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	BrandID       uint     `gorm:"index" json:"brand_id"`
	Name          string   `gorm:"not null" json:"name"`
	Year          int      `json:"year"`
	Concentration string   `json:"concentration"`
	Gender        string   `gorm:"type:varchar(20)" json:"gender"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	TopNotes      []string `gorm:"serializer:json" json:"top_notes"`
	MiddleNotes   []string `gorm:"serializer:json" json:"middle_notes"`
	BaseNotes     []string `gorm:"serializer:json" json:"base_notes"`
	// Longevity and Sillage are fixed editorial scores on a 1-10 scale.
	Longevity int       `json:"longevity"`
	Sillage   int       `json:"sillage"`
	Season    []string  `gorm:"serializer:json" json:"season"`
	TimeOfDay []string  `gorm:"serializer:json" json:"time_of_day"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Brand *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// BrandName returns the joined brand name, or "Unknown" when the brand row
// is missing or was not loaded.
func (f *Fragrance) BrandName() string {
	if f.Brand == nil || f.Brand.Name == "" {
		return "Unknown"
	}
	return f.Brand.Name
}
