package repository

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository defines the interface for rating data operations.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, userID, fragranceID uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.Rating, error)
	Get(ctx context.Context, userID, fragranceID uint) (*models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "fragrance_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(rating).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID, fragranceID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fragrance_id = ?", userID, fragranceID).
		Delete(&models.Rating{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("fragrance_id ASC").
		Find(&ratings).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *ratingRepository) Get(ctx context.Context, userID, fragranceID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fragrance_id = ?", userID, fragranceID).
		First(&rating).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}
