package service

import (
	"context"
	"testing"

	"github.com/Levuisha/parfumerie/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(profileRepo *profileRepoStub, shelfRepo *shelfRepoStub) *ProfileService {
	return NewProfileService(profileRepo, shelfRepo, noopCatalogRepo())
}

func TestProfileServiceUpdateRejectsInvalidUsername(t *testing.T) {
	svc := newProfileService(noopProfileRepo(), noopShelfRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1, Username: "x",
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestProfileServiceUpdateRejectsTakenUsername(t *testing.T) {
	profileRepo := noopProfileRepo()
	profileRepo.getByUsernameFn = func(context.Context, string) (*models.Profile, error) {
		return &models.Profile{UserID: 99, Username: "scentlord"}, nil
	}

	svc := newProfileService(profileRepo, noopShelfRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1, Username: "scentlord",
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestProfileServiceUpdateKeepsOwnUsername(t *testing.T) {
	profileRepo := noopProfileRepo()
	profileRepo.getByUsernameFn = func(context.Context, string) (*models.Profile, error) {
		return &models.Profile{UserID: 1, Username: "scentlord"}, nil
	}

	svc := newProfileService(profileRepo, noopShelfRepo())
	profile, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1, Username: "scentlord", Bio: "Still me.",
	})
	require.NoError(t, err)
	assert.Equal(t, "scentlord", profile.Username)
	assert.Equal(t, "Still me.", profile.Bio)
}

func TestProfileServiceSignatureMustBeOwned(t *testing.T) {
	shelfRepo := noopShelfRepo()
	shelfRepo.getStatusFn = func(context.Context, uint, uint) (models.ShelfStatus, bool, error) {
		return models.ShelfWant, true, nil
	}

	svc := newProfileService(noopProfileRepo(), shelfRepo)
	sig := uint(5)
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1, Username: "noseworthy", SignatureFragranceID: &sig,
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestProfileServiceSignatureOnOwnedShelf(t *testing.T) {
	shelfRepo := noopShelfRepo()
	shelfRepo.getStatusFn = func(context.Context, uint, uint) (models.ShelfStatus, bool, error) {
		return models.ShelfOwned, true, nil
	}

	svc := newProfileService(noopProfileRepo(), shelfRepo)
	sig := uint(5)
	profile, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1, Username: "noseworthy", SignatureFragranceID: &sig,
	})
	require.NoError(t, err)
	require.NotNil(t, profile.SignatureFragranceID)
	assert.Equal(t, uint(5), *profile.SignatureFragranceID)
}

func TestProfileServiceClearingSignatureSkipsShelfCheck(t *testing.T) {
	shelfRepo := noopShelfRepo()
	checked := false
	shelfRepo.getStatusFn = func(context.Context, uint, uint) (models.ShelfStatus, bool, error) {
		checked = true
		return "", false, nil
	}

	svc := newProfileService(noopProfileRepo(), shelfRepo)
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1, Username: "noseworthy", SignatureFragranceID: nil,
	})
	require.NoError(t, err)
	assert.False(t, checked)
}

func TestProfileServiceSearchRequiresQuery(t *testing.T) {
	svc := newProfileService(noopProfileRepo(), noopShelfRepo())
	_, err := svc.SearchPeople(context.Background(), "   ")
	require.Error(t, err)
}

func TestProfileServiceSearchCapsAtTwenty(t *testing.T) {
	profileRepo := noopProfileRepo()
	var gotLimit int
	profileRepo.searchByUsernameFn = func(_ context.Context, _ string, limit int) ([]models.Profile, error) {
		gotLimit = limit
		return nil, nil
	}

	svc := newProfileService(profileRepo, noopShelfRepo())
	_, err := svc.SearchPeople(context.Background(), "amber")
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
}

func TestProfileServiceGetPublicProfileUnknownUsername(t *testing.T) {
	svc := newProfileService(noopProfileRepo(), noopShelfRepo())
	_, err := svc.GetPublicProfile(context.Background(), "ghost")
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestProfileServiceGetPublicProfileResolvesSignature(t *testing.T) {
	sig := uint(3)
	profileRepo := noopProfileRepo()
	profileRepo.getByUsernameFn = func(context.Context, string) (*models.Profile, error) {
		return &models.Profile{UserID: 2, Username: "wristfirst", SignatureFragranceID: &sig}, nil
	}

	shelfRepo := noopShelfRepo()
	shelfRepo.listByUserFn = func(context.Context, uint) ([]models.ShelfEntry, error) {
		return []models.ShelfEntry{{UserID: 2, FragranceID: 3, Status: models.ShelfOwned}}, nil
	}

	svc := newProfileService(profileRepo, shelfRepo)
	view, err := svc.GetPublicProfile(context.Background(), "wristfirst")
	require.NoError(t, err)
	require.NotNil(t, view.SignatureFragrance)
	assert.Equal(t, uint(3), view.SignatureFragrance.ID)
	assert.Len(t, view.Shelves, 1)
}

func TestProfileServiceOwnedFragranceOptions(t *testing.T) {
	shelfRepo := noopShelfRepo()
	shelfRepo.listByUserAndStatusFn = func(_ context.Context, _ uint, status models.ShelfStatus) ([]models.ShelfEntry, error) {
		require.Equal(t, models.ShelfOwned, status)
		return []models.ShelfEntry{
			{FragranceID: 1, Fragrance: models.Fragrance{ID: 1, Name: "Aventus", Brand: &models.Brand{Name: "Creed"}}},
		}, nil
	}

	svc := newProfileService(noopProfileRepo(), shelfRepo)
	options, err := svc.OwnedFragranceOptions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Aventus", options[0].Name)
	assert.Equal(t, "Creed", options[0].Brand)
}
