package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/rayroman1160/agencyos/internal/config"
	"github.com/rayroman1160/agencyos/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := store.Connect(store.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	log.Println("Running database migrations...")
	if err := store.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Seeding default pipeline stages...")
	if err := store.NewDealStore(db).SeedStages(ctx); err != nil {
		log.Fatalf("Failed to seed pipeline stages: %v", err)
	}

	log.Println("Migrations completed successfully")
}
