package service

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/middleware"
	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/repository"
)

type ShelfService struct {
	shelfRepo   repository.ShelfRepository
	catalogRepo repository.CatalogRepository
}

type SetShelfInput struct {
	UserID      uint
	FragranceID uint
	Status      string
}

func NewShelfService(shelfRepo repository.ShelfRepository, catalogRepo repository.CatalogRepository) *ShelfService {
	return &ShelfService{shelfRepo: shelfRepo, catalogRepo: catalogRepo}
}

// SetShelf places a fragrance on the user's shelf under the given status,
// replacing any previous status for that fragrance.
func (s *ShelfService) SetShelf(ctx context.Context, in SetShelfInput) (*models.ShelfEntry, error) {
	status, ok := models.ParseShelfStatus(in.Status)
	if !ok {
		return nil, models.NewValidationError("Shelf status must be one of OWNED, WANT, TESTED")
	}
	if _, err := s.catalogRepo.GetFragrance(ctx, in.FragranceID); err != nil {
		return nil, err
	}

	entry := &models.ShelfEntry{
		UserID:      in.UserID,
		FragranceID: in.FragranceID,
		Status:      status,
	}
	if err := s.shelfRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	middleware.ShelfWrites.WithLabelValues(string(status)).Inc()
	return entry, nil
}

// RemoveShelf takes a fragrance off the user's shelf. Removing an absent
// entry succeeds.
func (s *ShelfService) RemoveShelf(ctx context.Context, userID, fragranceID uint) error {
	return s.shelfRepo.Delete(ctx, userID, fragranceID)
}

// ListShelf returns the user's shelf entries, optionally narrowed to one
// status. statusFilter "" means all three shelves.
func (s *ShelfService) ListShelf(ctx context.Context, userID uint, statusFilter string) ([]models.ShelfEntry, error) {
	if statusFilter == "" {
		return s.shelfRepo.ListByUser(ctx, userID)
	}
	status, ok := models.ParseShelfStatus(statusFilter)
	if !ok {
		return nil, models.NewValidationError("Shelf status must be one of OWNED, WANT, TESTED")
	}
	return s.shelfRepo.ListByUserAndStatus(ctx, userID, status)
}
