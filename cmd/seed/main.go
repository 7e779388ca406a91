// Command main runs the database seeder for the feed engine.
package main

import (
	"context"
	"flag"
	"log"

	"feedc/internal/cache"
	"feedc/internal/config"
	"feedc/internal/database"
	"feedc/internal/seed"
)

func main() {
	// Parse command line flags
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numCategories := flag.Int("categories", 12, "Number of categories to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d posts, %d categories, clean=%v\n", *numPosts, *numCategories, *shouldClean)

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

	// Run seeder
	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(*numPosts, *numCategories); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// Drop stale cached rules and categories so the API serves the new data.
	cache.InitRedis(cfg.RedisURL)
	s.FlushCache(context.Background())

	log.Println("All done! The database is now populated with demo feed data.")
}
