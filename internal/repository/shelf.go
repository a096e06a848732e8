package repository

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShelfRepository defines the interface for shelf entry data operations.
// A user holds at most one entry per fragrance, so writes are upserts on
// the (user, fragrance) pair.
type ShelfRepository interface {
	Upsert(ctx context.Context, entry *models.ShelfEntry) error
	Delete(ctx context.Context, userID, fragranceID uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.ShelfEntry, error)
	ListByUserAndStatus(ctx context.Context, userID uint, status models.ShelfStatus) ([]models.ShelfEntry, error)
	GetStatus(ctx context.Context, userID, fragranceID uint) (models.ShelfStatus, bool, error)
	OwnedFragranceIDs(ctx context.Context, userID uint) ([]uint, error)
}

type shelfRepository struct {
	db *gorm.DB
}

// NewShelfRepository creates a new shelf repository
func NewShelfRepository(db *gorm.DB) ShelfRepository {
	return &shelfRepository{db: db}
}

func (r *shelfRepository) Upsert(ctx context.Context, entry *models.ShelfEntry) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "fragrance_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(entry).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *shelfRepository) Delete(ctx context.Context, userID, fragranceID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fragrance_id = ?", userID, fragranceID).
		Delete(&models.ShelfEntry{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *shelfRepository) ListByUser(ctx context.Context, userID uint) ([]models.ShelfEntry, error) {
	var entries []models.ShelfEntry
	err := r.db.WithContext(ctx).
		Preload("Fragrance").Preload("Fragrance.Brand").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *shelfRepository) ListByUserAndStatus(ctx context.Context, userID uint, status models.ShelfStatus) ([]models.ShelfEntry, error) {
	var entries []models.ShelfEntry
	err := r.db.WithContext(ctx).
		Preload("Fragrance").Preload("Fragrance.Brand").
		Where("user_id = ? AND status = ?", userID, status).
		Order("updated_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *shelfRepository) GetStatus(ctx context.Context, userID, fragranceID uint) (models.ShelfStatus, bool, error) {
	var entry models.ShelfEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fragrance_id = ?", userID, fragranceID).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, models.NewInternalError(err)
	}
	return entry.Status, true, nil
}

func (r *shelfRepository) OwnedFragranceIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.ShelfEntry{}).
		Where("user_id = ? AND status = ?", userID, models.ShelfOwned).
		Order("fragrance_id ASC").
		Pluck("fragrance_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
