package service

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/cache"
	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/repository"
)

type RatingService struct {
	ratingRepo  repository.RatingRepository
	catalogRepo repository.CatalogRepository
	mirror      *cache.RatingMirror
}

type SetRatingInput struct {
	UserID      uint
	FragranceID uint
	Score       int
}

func NewRatingService(ratingRepo repository.RatingRepository, catalogRepo repository.CatalogRepository, mirror *cache.RatingMirror) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, catalogRepo: catalogRepo, mirror: mirror}
}

// SetRating stores the user's score for a fragrance, last write wins. The
// database is the source of truth; the Redis mirror is updated after the
// write so catalog reads see the new score immediately.
func (s *RatingService) SetRating(ctx context.Context, in SetRatingInput) (*models.Rating, error) {
	if !models.ValidRatingScore(in.Score) {
		return nil, models.NewValidationError("Rating must be between 1 and 10")
	}
	if _, err := s.catalogRepo.GetFragrance(ctx, in.FragranceID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		UserID:      in.UserID,
		FragranceID: in.FragranceID,
		Score:       in.Score,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	s.mirror.Set(ctx, in.UserID, in.FragranceID, in.Score)
	return rating, nil
}

// ClearRating removes the user's score. Clearing an absent rating succeeds.
func (s *RatingService) ClearRating(ctx context.Context, userID, fragranceID uint) error {
	if err := s.ratingRepo.Delete(ctx, userID, fragranceID); err != nil {
		return err
	}
	s.mirror.Remove(ctx, userID, fragranceID)
	return nil
}

// ListRatings returns all of the user's ratings.
func (s *RatingService) ListRatings(ctx context.Context, userID uint) ([]models.Rating, error) {
	return s.ratingRepo.ListByUser(ctx, userID)
}
