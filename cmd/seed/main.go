// Command main runs the database seeder for Parfumerie.
package main

import (
	"flag"
	"log"

	"github.com/Levuisha/parfumerie/internal/config"
	"github.com/Levuisha/parfumerie/internal/database"
	"github.com/Levuisha/parfumerie/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	shouldClean := flag.Bool("clean", true, "Clean user data before seeding")
	catalogOnly := flag.Bool("catalog-only", false, "Seed only the curated catalog")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *catalogOnly {
		if err := seed.Catalog(db); err != nil {
			log.Fatalf("Catalog seeding failed: %v", err)
		}
		log.Println("Catalog seeded.")
		return
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Println("All seeded users have the password: password123")
}
