package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/kimurazver67/sport-transformation-app-sub000/config"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/database"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/logging"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

func main() {
	file := flag.String("file", "seeds/catalog.json", "Catalog seed document")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logging.NewLogger(cfg)

	seed, err := readSeed(*file)
	if err != nil {
		log.Fatalf("failed to read seed %s: %v", *file, err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	result, err := service.NewCatalogService(db).Seed(context.Background(), seed)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	logger.Info("catalog seeded",
		slog.String("file", *file),
		slog.Int("tags", result.Tags),
		slog.Int("products", result.Products),
		slog.Int("recipes", result.Recipes),
	)
}

func readSeed(path string) (*types.CatalogSeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var seed types.CatalogSeed
	if err := json.NewDecoder(f).Decode(&seed); err != nil {
		return nil, err
	}
	return &seed, nil
}
