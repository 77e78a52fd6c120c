package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JonasLeetTheWay/clashon-go/internal/config"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("Database connected and migrated successfully")
	return db, nil
}

// SeedData inserts the super admin and the sample venues. Records that
// already exist are left alone, so it is safe to run on every start.
func SeedData(ctx context.Context, store repository.Store) error {
	admin := seedAdmin()
	if _, err := store.Admins.ByPhone(ctx, admin.Phone); errors.Is(err, repository.ErrNotFound) {
		if err := store.Admins.Create(ctx, &admin); err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		log.Info().Str("phone", admin.Phone).Str("role", admin.Role).Msg("Admin created")
	} else if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	created := 0
	for _, venue := range seedVenues() {
		venue := venue
		_, err := store.Venues.ByID(ctx, venue.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to look up venue %s: %w", venue.ID, err)
		}
		if err := store.Venues.Create(ctx, &venue); err != nil {
			return fmt.Errorf("failed to create venue %s: %w", venue.ID, err)
		}
		created++
	}

	log.Info().Int("venues_created", created).Msg("Sample data seeded successfully")
	return nil
}

func seedAdmin() models.Admin {
	email := "admin@clashon.com"
	return models.Admin{
		ID:    "admin-001",
		Phone: "9916444412",
		Name:  "Admin",
		Email: &email,
		Role:  models.RoleSuperAdmin,
	}
}

const (
	badmintonImage = "https://images.unsplash.com/photo-1626926938421-90124a4b83fa?crop=entropy&cs=srgb&fm=jpg&ixid=M3w4NjAzNzl8MHwxfHNlYXJjaHwyfHxiYWRtaW50b24lMjBjb3VydHxlbnwwfHx8fDE3NzA4ODUwODJ8MA&ixlib=rb-4.1.0&q=85&w=800"
	cricketImage   = "https://images.unsplash.com/photo-1512719994953-eabf50895df7?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3MjQyMTd8MHwxfHNlYXJjaHwxfHxjcmlja2V0JTIwc3RhZGl1bXxlbnwwfHx8fDE3NzA4ODUwODh8MA&ixlib=rb-4.1.0&q=85&w=800"
)

func seedVenues() []models.Venue {
	specs := []struct {
		id, name, location, sport string
		rating                    float64
		basePrice, superVideo     float64
		amenities                 []string
	}{
		{"venue-001", "Elite Badminton Arena", "Indiranagar, Bangalore", "Badminton", 4.8, 500, 200,
			[]string{"Parking", "Changing Room", "Water", "AC Courts"}},
		{"venue-002", "Champions Cricket Stadium", "Whitefield, Bangalore", "Cricket", 4.7, 1500, 300,
			[]string{"Turf Ground", "Floodlights", "Pavilion", "Practice Nets"}},
		{"venue-003", "ProCourt Badminton Center", "Koramangala, Bangalore", "Badminton", 4.9, 600, 200,
			[]string{"Parking", "Cafeteria", "Pro Shop", "AC Courts", "Lockers"}},
		{"venue-004", "Victory Cricket Arena", "HSR Layout, Bangalore", "Cricket", 4.6, 1200, 300,
			[]string{"Coaching Available", "Turf Ground", "Changing Room", "Water"}},
		{"venue-005", "Ace Shuttle Courts", "Jayanagar, Bangalore", "Badminton", 4.5, 450, 150,
			[]string{"Parking", "Water", "AC Courts"}},
		{"venue-006", "Premier Cricket Ground", "Electronic City, Bangalore", "Cricket", 4.8, 2000, 400,
			[]string{"Full Size Ground", "Floodlights", "Pavilion", "Parking", "Cafeteria"}},
	}

	venues := make([]models.Venue, 0, len(specs))
	for _, s := range specs {
		image := cricketImage
		if s.sport == "Badminton" {
			image = badmintonImage
		}
		basePrice := s.basePrice
		v := models.VenueCreate{
			Name:            s.name,
			Location:        s.location,
			Sport:           s.sport,
			Image:           &image,
			Rating:          &s.rating,
			BasePrice:       &basePrice,
			SuperVideoPrice: &s.superVideo,
			Amenities:       s.amenities,
		}.Venue()
		v.ID = s.id
		venues = append(venues, v)
	}
	return venues
}
