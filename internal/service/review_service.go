package service

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/repository"
	"github.com/Levuisha/parfumerie/internal/validation"
)

type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	catalogRepo repository.CatalogRepository
}

type UpsertReviewInput struct {
	UserID      uint
	FragranceID uint
	Text        string
}

func NewReviewService(reviewRepo repository.ReviewRepository, catalogRepo repository.CatalogRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, catalogRepo: catalogRepo}
}

// UpsertReview creates or replaces the user's review of a fragrance. The
// text is validated before any write so an out-of-bounds review never
// reaches the database.
func (s *ReviewService) UpsertReview(ctx context.Context, in UpsertReviewInput) (*models.Review, error) {
	text, err := validation.ValidateReviewText(in.Text)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.catalogRepo.GetFragrance(ctx, in.FragranceID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:      in.UserID,
		FragranceID: in.FragranceID,
		Text:        text,
	}
	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetMyReview returns the user's review of a fragrance, or nil without one.
func (s *ReviewService) GetMyReview(ctx context.Context, userID, fragranceID uint) (*models.Review, error) {
	return s.reviewRepo.GetMine(ctx, userID, fragranceID)
}

// DeleteMyReview removes the user's review. Users can only ever delete
// their own; the pair key makes anything else unreachable.
func (s *ReviewService) DeleteMyReview(ctx context.Context, userID, fragranceID uint) error {
	return s.reviewRepo.DeleteMine(ctx, userID, fragranceID)
}
