package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/JonasLeetTheWay/clashon-go/internal/config"
	"github.com/JonasLeetTheWay/clashon-go/internal/database"
	"github.com/JonasLeetTheWay/clashon-go/internal/logging"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Seed sample data
	if err := database.SeedData(context.Background(), postgres.NewStore(db)); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed data")
	}

	log.Info().Msg("Database migration and seeding completed successfully")
}
