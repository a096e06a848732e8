package repository

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository defines the interface for review data operations.
type ReviewRepository interface {
	Upsert(ctx context.Context, review *models.Review) error
	DeleteMine(ctx context.Context, userID, fragranceID uint) error
	GetMine(ctx context.Context, userID, fragranceID uint) (*models.Review, error)
	ListByFragrance(ctx context.Context, fragranceID uint) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "fragrance_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
		}).
		Create(review).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) DeleteMine(ctx context.Context, userID, fragranceID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fragrance_id = ?", userID, fragranceID).
		Delete(&models.Review{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) GetMine(ctx context.Context, userID, fragranceID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fragrance_id = ?", userID, fragranceID).
		First(&review).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) ListByFragrance(ctx context.Context, fragranceID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("fragrance_id = ?", fragranceID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}
