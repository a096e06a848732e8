package service

import (
	"context"
	"strings"

	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/repository"
	"github.com/Levuisha/parfumerie/internal/validation"
)

const peopleSearchLimit = 20

type ProfileService struct {
	profileRepo repository.ProfileRepository
	shelfRepo   repository.ShelfRepository
	catalogRepo repository.CatalogRepository
}

type UpdateProfileInput struct {
	UserID               uint
	Username             string
	Bio                  string
	SignatureFragranceID *uint
}

// FragranceOption is a light row for signature-fragrance pickers.
type FragranceOption struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// PublicProfile is the view returned for people pages: the profile plus
// the owner's shelves and resolved signature fragrance.
type PublicProfile struct {
	Profile            models.Profile      `json:"profile"`
	SignatureFragrance *models.Fragrance   `json:"signature_fragrance,omitempty"`
	Shelves            []models.ShelfEntry `json:"shelves"`
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	shelfRepo repository.ShelfRepository,
	catalogRepo repository.CatalogRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		shelfRepo:   shelfRepo,
		catalogRepo: catalogRepo,
	}
}

// EnsureProfile guarantees a profile row exists for the user. Called on
// signup and on every login; safe to repeat.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID uint) error {
	return s.profileRepo.EnsureRow(ctx, userID)
}

// GetMyProfile returns the caller's profile, creating the row if a
// pre-profile account slips through.
func (s *ProfileService) GetMyProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	if err := s.profileRepo.EnsureRow(ctx, userID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies the editable profile fields. Usernames must be
// valid and unique across users; the signature fragrance must sit on the
// caller's OWNED shelf.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.GetMyProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	if username != "" {
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.profileRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.UserID != in.UserID {
			return nil, models.NewConflictError("Username is already taken")
		}
	}

	if in.SignatureFragranceID != nil {
		status, ok, err := s.shelfRepo.GetStatus(ctx, in.UserID, *in.SignatureFragranceID)
		if err != nil {
			return nil, err
		}
		if !ok || status != models.ShelfOwned {
			return nil, models.NewValidationError("Signature fragrance must be on your owned shelf")
		}
	}

	profile.Username = username
	profile.Bio = strings.TrimSpace(in.Bio)
	profile.SignatureFragranceID = in.SignatureFragranceID
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetAvatarURL records the stored avatar location on the profile.
func (s *ProfileService) SetAvatarURL(ctx context.Context, userID uint, url string) (*models.Profile, error) {
	profile, err := s.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.AvatarURL = url
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// OwnedFragranceOptions lists the caller's OWNED fragrances for the
// signature-fragrance picker.
func (s *ProfileService) OwnedFragranceOptions(ctx context.Context, userID uint) ([]FragranceOption, error) {
	entries, err := s.shelfRepo.ListByUserAndStatus(ctx, userID, models.ShelfOwned)
	if err != nil {
		return nil, err
	}
	options := make([]FragranceOption, 0, len(entries))
	for _, e := range entries {
		options = append(options, FragranceOption{
			ID:    e.FragranceID,
			Name:  e.Fragrance.Name,
			Brand: e.Fragrance.BrandName(),
		})
	}
	return options, nil
}

// SearchPeople finds profiles whose username contains the query,
// case-insensitively, capped at 20 results.
func (s *ProfileService) SearchPeople(ctx context.Context, query string) ([]models.Profile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.profileRepo.SearchByUsername(ctx, query, peopleSearchLimit)
}

// GetPublicProfile resolves a username into the public view of that
// user's scent life.
func (s *ProfileService) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", username)
	}

	view := &PublicProfile{Profile: *profile}

	if profile.SignatureFragranceID != nil {
		fragrance, err := s.catalogRepo.GetFragrance(ctx, *profile.SignatureFragranceID)
		if err == nil {
			view.SignatureFragrance = fragrance
		}
	}

	shelves, err := s.shelfRepo.ListByUser(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	view.Shelves = shelves
	return view, nil
}
