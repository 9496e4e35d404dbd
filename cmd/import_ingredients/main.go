package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/akulinich/foodgram-backend/internal/config"
	"github.com/akulinich/foodgram-backend/internal/db"
	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/services"
)

// Loads the ingredient catalog from a two-column CSV (name, measurement
// unit). Rows whose (name, unit) pair already exists are left untouched.
func main() {
	path := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV file")
	flag.Parse()

	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Could not load configuration", "error", err)
	}

	postgresService, err := db.NewPostgresService(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	ingredientRepo := repos.NewIngredientRepo(thePG, log)
	ingredientService := services.NewIngredientService(thePG, log, ingredientRepo)

	count, err := ingredientService.ImportCSV(context.Background(), *path)
	if err != nil {
		log.Fatal("Import failed", "error", err, "file", *path)
	}
	log.Info("Import finished", "file", *path, "imported", count)
}
