package seed

import (
	"errors"
	"fmt"

	"github.com/Levuisha/parfumerie/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInFragrance is a permanent catalog entry.
type BuiltInFragrance struct {
	Brand         string
	Name          string
	Year          int
	Concentration string
	Gender        string
	TopNotes      []string
	MiddleNotes   []string
	BaseNotes     []string
	Longevity     int
	Sillage       int
	Season        []string
	TimeOfDay     []string
}

// BuiltInCatalog defines the permanent curated catalog. Seeding is
// idempotent; re-running refreshes the attributes of existing rows.
var BuiltInCatalog = []BuiltInFragrance{
	{
		Brand: "Creed", Name: "Aventus", Year: 2010, Concentration: "EDP",
		Gender:      models.GenderMale,
		TopNotes:    []string{"Pineapple", "Bergamot", "Black Currant", "Apple"},
		MiddleNotes: []string{"Birch", "Patchouli", "Moroccan Jasmine", "Rose"},
		BaseNotes:   []string{"Musk", "Oakmoss", "Ambergris", "Vanilla"},
		Longevity:   8, Sillage: 7,
		Season: []string{"Spring", "Fall"}, TimeOfDay: []string{"Day"},
	},
	{
		Brand: "Dolce & Gabbana", Name: "Light Blue", Year: 2001, Concentration: "EDT",
		Gender:      models.GenderFemale,
		TopNotes:    []string{"Sicilian Lemon", "Apple", "Cedar", "Bellflower"},
		MiddleNotes: []string{"Bamboo", "Jasmine", "White Rose"},
		BaseNotes:   []string{"Cedar", "Musk", "Amber"},
		Longevity:   6, Sillage: 5,
		Season: []string{"Summer"}, TimeOfDay: []string{"Day"},
	},
	{
		Brand: "Maison Francis Kurkdjian", Name: "Baccarat Rouge 540", Year: 2015,
		Concentration: "EDP", Gender: models.GenderUnisex,
		TopNotes:    []string{"Saffron", "Jasmine"},
		MiddleNotes: []string{"Amberwood", "Ambergris"},
		BaseNotes:   []string{"Fir Resin", "Cedar"},
		Longevity:   9, Sillage: 9,
		Season: []string{"Fall", "Winter"}, TimeOfDay: []string{"Night"},
	},
	{
		Brand: "Giorgio Armani", Name: "Acqua di Gio", Year: 1996, Concentration: "EDT",
		Gender:      models.GenderMale,
		TopNotes:    []string{"Lime", "Lemon", "Bergamot", "Jasmine"},
		MiddleNotes: []string{"Sea Notes", "Jasmine", "Calone", "Peach"},
		BaseNotes:   []string{"White Musk", "Cedar", "Oakmoss", "Patchouli"},
		Longevity:   5, Sillage: 4,
		Season: []string{"Summer"}, TimeOfDay: []string{"Day"},
	},
	{
		Brand: "Chanel", Name: "Coco Mademoiselle", Year: 2001, Concentration: "EDP",
		Gender:      models.GenderFemale,
		TopNotes:    []string{"Orange", "Mandarin Orange", "Bergamot"},
		MiddleNotes: []string{"Turkish Rose", "Jasmine", "Mimosa", "Ylang-Ylang"},
		BaseNotes:   []string{"Patchouli", "White Musk", "Vanilla", "Vetiver"},
		Longevity:   7, Sillage: 6,
		Season: []string{"Spring", "Fall"}, TimeOfDay: []string{"Day", "Night"},
	},
	{
		Brand: "Chanel", Name: "Bleu de Chanel", Year: 2010, Concentration: "EDP",
		Gender:      models.GenderMale,
		TopNotes:    []string{"Grapefruit", "Lemon", "Mint", "Pink Pepper"},
		MiddleNotes: []string{"Ginger", "Nutmeg", "Jasmine"},
		BaseNotes:   []string{"Incense", "Amber", "Cedar", "Sandalwood"},
		Longevity:   7, Sillage: 6,
		Season: []string{"Spring", "Fall"}, TimeOfDay: []string{"Day", "Night"},
	},
	{
		Brand: "Tom Ford", Name: "Tobacco Vanille", Year: 2007, Concentration: "EDP",
		Gender:      models.GenderUnisex,
		TopNotes:    []string{"Tobacco Leaf", "Spices"},
		MiddleNotes: []string{"Vanilla", "Cacao", "Tonka Bean"},
		BaseNotes:   []string{"Dried Fruits", "Woody Notes"},
		Longevity:   9, Sillage: 8,
		Season: []string{"Fall", "Winter"}, TimeOfDay: []string{"Night"},
	},
	{
		Brand: "Tom Ford", Name: "Neroli Portofino", Year: 2011, Concentration: "EDP",
		Gender:      models.GenderUnisex,
		TopNotes:    []string{"Neroli", "Bergamot", "Mandarin Orange", "Lemon"},
		MiddleNotes: []string{"African Orange Flower", "Jasmine", "Lavender"},
		BaseNotes:   []string{"Amber", "Ambrette", "Angelica"},
		Longevity:   4, Sillage: 4,
		Season: []string{"Summer"}, TimeOfDay: []string{"Day"},
	},
	{
		Brand: "Guerlain", Name: "Shalimar", Year: 1925, Concentration: "EDP",
		Gender:      models.GenderFemale,
		TopNotes:    []string{"Citruses", "Bergamot", "Cedar"},
		MiddleNotes: []string{"Iris", "Jasmine", "Rose", "Patchouli"},
		BaseNotes:   []string{"Vanilla", "Incense", "Opoponax", "Tonka Bean"},
		Longevity:   8, Sillage: 7,
		Season: []string{"Fall", "Winter"}, TimeOfDay: []string{"Night"},
	},
	{
		Brand: "Dior", Name: "Sauvage", Year: 2015, Concentration: "EDT",
		Gender:      models.GenderMale,
		TopNotes:    []string{"Calabrian Bergamot", "Pepper"},
		MiddleNotes: []string{"Sichuan Pepper", "Lavender", "Pink Pepper", "Vetiver"},
		BaseNotes:   []string{"Ambroxan", "Cedar", "Labdanum"},
		Longevity:   8, Sillage: 8,
		Season: []string{"Spring", "Summer", "Fall"}, TimeOfDay: []string{"Day", "Night"},
	},
	{
		Brand: "Dior", Name: "Miss Dior", Year: 2017, Concentration: "EDP",
		Gender:      models.GenderFemale,
		TopNotes:    []string{"Calabrian Bergamot", "Blood Orange", "Mandarin Orange"},
		MiddleNotes: []string{"Grasse Rose", "Damask Rose", "Lily-of-the-Valley"},
		BaseNotes:   []string{"Pink Pepper", "White Musk", "Rosewood"},
		Longevity:   6, Sillage: 5,
		Season: []string{"Spring"}, TimeOfDay: []string{"Day"},
	},
	{
		Brand: "Le Labo", Name: "Santal 33", Year: 2011, Concentration: "EDP",
		Gender:      models.GenderUnisex,
		TopNotes:    []string{"Violet Accord", "Cardamom"},
		MiddleNotes: []string{"Iris", "Ambrox"},
		BaseNotes:   []string{"Sandalwood", "Cedarwood", "Leather"},
		Longevity:   8, Sillage: 6,
		Season: []string{"Fall", "Winter"}, TimeOfDay: []string{"Day", "Night"},
	},
}

// Catalog seeds the permanent brands and fragrances.
func Catalog(db *gorm.DB) error {
	for _, item := range BuiltInCatalog {
		err := db.Transaction(func(tx *gorm.DB) error {
			brand := models.Brand{Name: item.Brand}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&brand).Error; err != nil {
				return err
			}
			if brand.ID == 0 {
				if err := tx.Where("name = ?", item.Brand).First(&brand).Error; err != nil {
					return err
				}
			}

			fragrance := models.Fragrance{
				BrandID:       brand.ID,
				Name:          item.Name,
				Year:          item.Year,
				Concentration: item.Concentration,
				Gender:        item.Gender,
				TopNotes:      item.TopNotes,
				MiddleNotes:   item.MiddleNotes,
				BaseNotes:     item.BaseNotes,
				Longevity:     item.Longevity,
				Sillage:       item.Sillage,
				Season:        item.Season,
				TimeOfDay:     item.TimeOfDay,
			}

			var existing models.Fragrance
			queryErr := tx.Where("brand_id = ? AND name = ?", brand.ID, item.Name).
				First(&existing).Error
			switch {
			case queryErr == nil:
				fragrance.ID = existing.ID
				fragrance.CreatedAt = existing.CreatedAt
				return tx.Save(&fragrance).Error
			case errors.Is(queryErr, gorm.ErrRecordNotFound):
				return tx.Create(&fragrance).Error
			default:
				return queryErr
			}
		})
		if err != nil {
			return fmt.Errorf("seed built-in fragrance %s %s: %w", item.Brand, item.Name, err)
		}
	}

	return nil
}
