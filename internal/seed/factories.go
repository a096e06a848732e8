// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Levuisha/parfumerie/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune how the factory generates data.
type SeedOptions struct {
	// SkipBcrypt stores the demo password in plain text for fast dev seeding.
	SkipBcrypt bool
	// MaxDays bounds how far back generated timestamps are spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	r    *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, opts: opts, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// spreadBack returns a timestamp scattered over the last MaxDays days.
func (f *Factory) spreadBack() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user with its profile row.
// Optional override functions may modify the generated profile before saving.
func (f *Factory) CreateUser(overrides ...func(*models.Profile)) (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))

	user := &models.User{
		Email: fmt.Sprintf("%s@example.com", username),
	}
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:    user.ID,
		Username:  username,
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
	}
	for _, override := range overrides {
		override(profile)
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateShelfEntry puts a fragrance on one of the user's shelves.
func (f *Factory) CreateShelfEntry(user *models.User, fragrance *models.Fragrance, status models.ShelfStatus) (*models.ShelfEntry, error) {
	entry := &models.ShelfEntry{
		UserID:      user.ID,
		FragranceID: fragrance.ID,
		Status:      status,
		CreatedAt:   f.spreadBack(),
	}
	entry.UpdatedAt = entry.CreatedAt
	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateRating persists a score from `user` on `fragrance`.
func (f *Factory) CreateRating(user *models.User, fragrance *models.Fragrance, score int) (*models.Rating, error) {
	rating := &models.Rating{
		UserID:      user.ID,
		FragranceID: fragrance.ID,
		Score:       score,
		CreatedAt:   f.spreadBack(),
	}
	rating.UpdatedAt = rating.CreatedAt
	if err := f.db.Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}

// CreateReview persists a generated review from `user` on `fragrance`.
func (f *Factory) CreateReview(user *models.User, fragrance *models.Fragrance, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		UserID:      user.ID,
		FragranceID: fragrance.ID,
		Text:        generateReviewText(f.r, fragrance),
		CreatedAt:   f.spreadBack(),
	}
	review.UpdatedAt = review.CreatedAt

	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateFriendEdge persists a one-way friend edge from `user` to `friend`.
func (f *Factory) CreateFriendEdge(user, friend *models.User) error {
	edge := &models.FriendEdge{
		UserID:   user.ID,
		FriendID: friend.ID,
	}
	return f.db.Create(edge).Error
}

// logCreated is shared progress logging for bulk loops.
func logCreated(kind string, n int) {
	if n > 0 && n%100 == 0 {
		log.Printf("Created %d %s...", n, kind)
	}
}
