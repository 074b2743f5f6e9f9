// Command main runs the database seeder for InvestKoree.
package main

import (
	"flag"
	"log"

	"investkoree/internal/config"
	"investkoree/internal/database"
	"investkoree/internal/seed"
)

func main() {
	numFounders := flag.Int("founders", 20, "Number of founder accounts to create")
	postsPerFounder := flag.Int("posts", 4, "Posts (published + pending) per founder")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d founders, %d posts each, clean=%v\n", *numFounders, *postsPerFounder, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err = database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	f := seed.NewFactory(database.DB)

	if *shouldClean {
		if err := f.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := f.Demo(*numFounders, *postsPerFounder); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
