package repository

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines the interface for friend edge data operations.
// Edges are directed: A adding B says nothing about B's list.
type FriendRepository interface {
	Add(ctx context.Context, userID, friendID uint) error
	Remove(ctx context.Context, userID, friendID uint) error
	Exists(ctx context.Context, userID, friendID uint) (bool, error)
	ListFriends(ctx context.Context, userID uint) ([]models.FriendEdge, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Add(ctx context.Context, userID, friendID uint) error {
	edge := models.FriendEdge{UserID: userID, FriendID: friendID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) Remove(ctx context.Context, userID, friendID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.FriendEdge{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) Exists(ctx context.Context, userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.FriendEdge, error) {
	var edges []models.FriendEdge
	err := r.db.WithContext(ctx).
		Preload("Friend").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&edges).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}
