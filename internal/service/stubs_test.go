package service

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/models"
)

type catalogRepoStub struct {
	listFragrancesFn     func(context.Context) ([]models.Fragrance, error)
	getFragranceFn       func(context.Context, uint) (*models.Fragrance, error)
	distinctBrandNamesFn func(context.Context) ([]string, error)
}

func (s *catalogRepoStub) ListFragrances(ctx context.Context) ([]models.Fragrance, error) {
	return s.listFragrancesFn(ctx)
}
func (s *catalogRepoStub) GetFragrance(ctx context.Context, id uint) (*models.Fragrance, error) {
	return s.getFragranceFn(ctx, id)
}
func (s *catalogRepoStub) DistinctBrandNames(ctx context.Context) ([]string, error) {
	return s.distinctBrandNamesFn(ctx)
}

func noopCatalogRepo() *catalogRepoStub {
	return &catalogRepoStub{
		listFragrancesFn: func(context.Context) ([]models.Fragrance, error) { return nil, nil },
		getFragranceFn: func(_ context.Context, id uint) (*models.Fragrance, error) {
			return &models.Fragrance{ID: id}, nil
		},
		distinctBrandNamesFn: func(context.Context) ([]string, error) { return nil, nil },
	}
}

type ratingRepoStub struct {
	upsertFn     func(context.Context, *models.Rating) error
	deleteFn     func(context.Context, uint, uint) error
	listByUserFn func(context.Context, uint) ([]models.Rating, error)
	getFn        func(context.Context, uint, uint) (*models.Rating, error)
}

func (s *ratingRepoStub) Upsert(ctx context.Context, rating *models.Rating) error {
	return s.upsertFn(ctx, rating)
}
func (s *ratingRepoStub) Delete(ctx context.Context, userID, fragranceID uint) error {
	return s.deleteFn(ctx, userID, fragranceID)
}
func (s *ratingRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *ratingRepoStub) Get(ctx context.Context, userID, fragranceID uint) (*models.Rating, error) {
	return s.getFn(ctx, userID, fragranceID)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		upsertFn:     func(context.Context, *models.Rating) error { return nil },
		deleteFn:     func(context.Context, uint, uint) error { return nil },
		listByUserFn: func(context.Context, uint) ([]models.Rating, error) { return nil, nil },
		getFn:        func(context.Context, uint, uint) (*models.Rating, error) { return nil, nil },
	}
}

type shelfRepoStub struct {
	upsertFn              func(context.Context, *models.ShelfEntry) error
	deleteFn              func(context.Context, uint, uint) error
	listByUserFn          func(context.Context, uint) ([]models.ShelfEntry, error)
	listByUserAndStatusFn func(context.Context, uint, models.ShelfStatus) ([]models.ShelfEntry, error)
	getStatusFn           func(context.Context, uint, uint) (models.ShelfStatus, bool, error)
	ownedFragranceIDsFn   func(context.Context, uint) ([]uint, error)
}

func (s *shelfRepoStub) Upsert(ctx context.Context, entry *models.ShelfEntry) error {
	return s.upsertFn(ctx, entry)
}
func (s *shelfRepoStub) Delete(ctx context.Context, userID, fragranceID uint) error {
	return s.deleteFn(ctx, userID, fragranceID)
}
func (s *shelfRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.ShelfEntry, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *shelfRepoStub) ListByUserAndStatus(ctx context.Context, userID uint, status models.ShelfStatus) ([]models.ShelfEntry, error) {
	return s.listByUserAndStatusFn(ctx, userID, status)
}
func (s *shelfRepoStub) GetStatus(ctx context.Context, userID, fragranceID uint) (models.ShelfStatus, bool, error) {
	return s.getStatusFn(ctx, userID, fragranceID)
}
func (s *shelfRepoStub) OwnedFragranceIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.ownedFragranceIDsFn(ctx, userID)
}

func noopShelfRepo() *shelfRepoStub {
	return &shelfRepoStub{
		upsertFn:     func(context.Context, *models.ShelfEntry) error { return nil },
		deleteFn:     func(context.Context, uint, uint) error { return nil },
		listByUserFn: func(context.Context, uint) ([]models.ShelfEntry, error) { return nil, nil },
		listByUserAndStatusFn: func(context.Context, uint, models.ShelfStatus) ([]models.ShelfEntry, error) {
			return nil, nil
		},
		getStatusFn: func(context.Context, uint, uint) (models.ShelfStatus, bool, error) {
			return "", false, nil
		},
		ownedFragranceIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

type reviewRepoStub struct {
	upsertFn          func(context.Context, *models.Review) error
	deleteMineFn      func(context.Context, uint, uint) error
	getMineFn         func(context.Context, uint, uint) (*models.Review, error)
	listByFragranceFn func(context.Context, uint) ([]models.Review, error)
}

func (s *reviewRepoStub) Upsert(ctx context.Context, review *models.Review) error {
	return s.upsertFn(ctx, review)
}
func (s *reviewRepoStub) DeleteMine(ctx context.Context, userID, fragranceID uint) error {
	return s.deleteMineFn(ctx, userID, fragranceID)
}
func (s *reviewRepoStub) GetMine(ctx context.Context, userID, fragranceID uint) (*models.Review, error) {
	return s.getMineFn(ctx, userID, fragranceID)
}
func (s *reviewRepoStub) ListByFragrance(ctx context.Context, fragranceID uint) ([]models.Review, error) {
	return s.listByFragranceFn(ctx, fragranceID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		upsertFn:          func(context.Context, *models.Review) error { return nil },
		deleteMineFn:      func(context.Context, uint, uint) error { return nil },
		getMineFn:         func(context.Context, uint, uint) (*models.Review, error) { return nil, nil },
		listByFragranceFn: func(context.Context, uint) ([]models.Review, error) { return nil, nil },
	}
}

type profileRepoStub struct {
	ensureRowFn        func(context.Context, uint) error
	getByUserIDFn      func(context.Context, uint) (*models.Profile, error)
	getByUsernameFn    func(context.Context, string) (*models.Profile, error)
	updateFn           func(context.Context, *models.Profile) error
	searchByUsernameFn func(context.Context, string, int) ([]models.Profile, error)
}

func (s *profileRepoStub) EnsureRow(ctx context.Context, userID uint) error {
	return s.ensureRowFn(ctx, userID)
}
func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) SearchByUsername(ctx context.Context, query string, limit int) ([]models.Profile, error) {
	return s.searchByUsernameFn(ctx, query, limit)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		ensureRowFn: func(context.Context, uint) error { return nil },
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{UserID: userID}, nil
		},
		getByUsernameFn: func(context.Context, string) (*models.Profile, error) { return nil, nil },
		updateFn:        func(context.Context, *models.Profile) error { return nil },
		searchByUsernameFn: func(context.Context, string, int) ([]models.Profile, error) {
			return nil, nil
		},
	}
}

type friendRepoStub struct {
	addFn         func(context.Context, uint, uint) error
	removeFn      func(context.Context, uint, uint) error
	existsFn      func(context.Context, uint, uint) (bool, error)
	listFriendsFn func(context.Context, uint) ([]models.FriendEdge, error)
}

func (s *friendRepoStub) Add(ctx context.Context, userID, friendID uint) error {
	return s.addFn(ctx, userID, friendID)
}
func (s *friendRepoStub) Remove(ctx context.Context, userID, friendID uint) error {
	return s.removeFn(ctx, userID, friendID)
}
func (s *friendRepoStub) Exists(ctx context.Context, userID, friendID uint) (bool, error) {
	return s.existsFn(ctx, userID, friendID)
}
func (s *friendRepoStub) ListFriends(ctx context.Context, userID uint) ([]models.FriendEdge, error) {
	return s.listFriendsFn(ctx, userID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		addFn:         func(context.Context, uint, uint) error { return nil },
		removeFn:      func(context.Context, uint, uint) error { return nil },
		existsFn:      func(context.Context, uint, uint) (bool, error) { return false, nil },
		listFriendsFn: func(context.Context, uint) ([]models.FriendEdge, error) { return nil, nil },
	}
}
