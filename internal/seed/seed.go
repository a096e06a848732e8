package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/Levuisha/parfumerie/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

var (
	openers = []string{
		"Blind bought this and",
		"Got a decant from a friend and",
		"Wore this to the office and",
		"Sprayed this on a cold evening and",
		"Tested this on card first, then on skin, and",
		"Picked this up on a whim and",
	}

	impressions = []string{
		"the opening is all %s, bright and loud",
		"it settles into a soft %s haze within the hour",
		"the %s in the drydown is what keeps me coming back",
		"it smells mostly of %s on my skin, for better or worse",
		"the %s note is far stronger than the pyramid suggests",
	}

	verdicts = []string{
		"Easily a bottle-worthy scent for me.",
		"Good, not great; a decant will do.",
		"Compliment machine, but it needs careful spraying.",
		"Too polarizing for daily wear, perfect for nights out.",
		"Quietly excellent and badly underrated.",
		"Loud for two hours, then it whispers.",
	}
)

// generateReviewText builds a short fragrance review mentioning the
// fragrance's actual notes. Output always fits the review length bounds.
func generateReviewText(r *rand.Rand, fragrance *models.Fragrance) string {
	note := "musk"
	notes := append(append([]string{}, fragrance.TopNotes...), fragrance.BaseNotes...)
	if len(notes) > 0 {
		note = strings.ToLower(notes[r.Intn(len(notes))])
	}

	opener := openers[r.Intn(len(openers))]
	impression := fmt.Sprintf(impressions[r.Intn(len(impressions))], note)
	verdict := verdicts[r.Intn(len(verdicts))]

	return fmt.Sprintf("%s %s. %s", opener, impression, verdict)
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	r       *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	factory := NewFactory(db, SeedOptions{})
	return &Seeder{db: db, factory: factory, r: factory.r}
}

// ClearAll removes user-generated data. The curated catalog survives;
// Catalog refreshes it in place.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing user data...")
	sql := `TRUNCATE TABLE friend_edges, reviews, ratings, shelf_entries, profiles, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedCommunity creates users with shelves, ratings, reviews and friend
// edges over the seeded catalog.
func (s *Seeder) SeedCommunity(numUsers int) ([]models.User, error) {
	log.Printf("Seeding %d users over the catalog...", numUsers)

	var fragrances []models.Fragrance
	if err := s.db.Find(&fragrances).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(fragrances) == 0 {
		return nil, fmt.Errorf("catalog is empty, run Catalog first")
	}

	users := make([]models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, *user)

		if err := s.seedUserActivity(user, fragrances); err != nil {
			return nil, err
		}
		logCreated("users", i)
	}
	log.Printf("Created %d users", len(users))

	if err := s.seedFriendEdges(users); err != nil {
		return nil, err
	}
	return users, nil
}

// seedUserActivity gives one user a spread of shelves, ratings and reviews.
func (s *Seeder) seedUserActivity(user *models.User, fragrances []models.Fragrance) error {
	statuses := []models.ShelfStatus{models.ShelfOwned, models.ShelfWant, models.ShelfTested}

	var ownedIDs []uint
	for i := range fragrances {
		// Roughly half the catalog ends up on some shelf.
		if s.r.Float32() >= 0.5 {
			continue
		}
		status := statuses[s.r.Intn(len(statuses))]
		if _, err := s.factory.CreateShelfEntry(user, &fragrances[i], status); err != nil {
			return err
		}
		if status == models.ShelfOwned {
			ownedIDs = append(ownedIDs, fragrances[i].ID)
		}

		if s.r.Float32() < 0.7 {
			score := 1 + s.r.Intn(10)
			if _, err := s.factory.CreateRating(user, &fragrances[i], score); err != nil {
				return err
			}
		}
		if s.r.Float32() < 0.3 {
			if _, err := s.factory.CreateReview(user, &fragrances[i]); err != nil {
				return err
			}
		}
	}

	// Some users pick a signature fragrance off their owned shelf.
	if len(ownedIDs) > 0 && s.r.Float32() < 0.6 {
		signatureID := ownedIDs[s.r.Intn(len(ownedIDs))]
		err := s.db.Model(&models.Profile{}).Where("user_id = ?", user.ID).
			Update("signature_fragrance_id", signatureID).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// seedFriendEdges wires one-way follows between seeded users.
func (s *Seeder) seedFriendEdges(users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	edges := 0
	for i := range users {
		// Each user adds a handful of others; edges are one-way.
		for n := 0; n < 3; n++ {
			j := s.r.Intn(len(users))
			if users[j].ID == users[i].ID {
				continue
			}
			if err := s.factory.CreateFriendEdge(&users[i], &users[j]); err != nil {
				// The (user, friend) pair is unique; repeats just collide.
				continue
			}
			edges++
		}
	}
	log.Printf("Created %d friend edges", edges)
	return nil
}

// Seed populates the database with the curated catalog plus community data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users...", opts.NumUsers)

	s := NewSeeder(db)
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear existing data, continuing anyway...")
		}
	}

	if err := Catalog(db); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.Printf("Catalog seeded with %d fragrances", len(BuiltInCatalog))

	if _, err := s.SeedCommunity(opts.NumUsers); err != nil {
		return fmt.Errorf("failed to seed community: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}
