package repository

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository defines read access to the seeded fragrance catalog.
// Catalog rows are never written through the API.
type CatalogRepository interface {
	ListFragrances(ctx context.Context) ([]models.Fragrance, error)
	GetFragrance(ctx context.Context, id uint) (*models.Fragrance, error)
	// DistinctBrandNames returns the names of brands that appear on at
	// least one fragrance, ordered by name.
	DistinctBrandNames(ctx context.Context) ([]string, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListFragrances(ctx context.Context) ([]models.Fragrance, error) {
	var fragrances []models.Fragrance
	if err := r.db.WithContext(ctx).Preload("Brand").Order("id ASC").Find(&fragrances).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return fragrances, nil
}

func (r *catalogRepository) GetFragrance(ctx context.Context, id uint) (*models.Fragrance, error) {
	var fragrance models.Fragrance
	if err := r.db.WithContext(ctx).Preload("Brand").First(&fragrance, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Fragrance", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &fragrance, nil
}

func (r *catalogRepository) DistinctBrandNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Fragrance{}).
		Joins("JOIN brands ON brands.id = fragrances.brand_id").
		Distinct("brands.name").
		Order("brands.name ASC").
		Pluck("brands.name", &names).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}
