package database

import (
	"context"
	"testing"

	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository/memory"
)

func TestSeedDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	for i := 0; i < 2; i++ {
		if err := SeedData(ctx, store); err != nil {
			t.Fatalf("SeedData() run %d error = %v", i+1, err)
		}
	}

	admins, _ := store.Admins.Count(ctx)
	if admins != 1 {
		t.Errorf("admins = %d, want 1", admins)
	}
	admin, err := store.Admins.ByPhone(ctx, "9916444412")
	if err != nil || admin.Role != models.RoleSuperAdmin || admin.ID != "admin-001" {
		t.Errorf("seed admin = %+v, %v", admin, err)
	}

	venues, _ := store.Venues.List(ctx, repository.VenueFilter{IsActive: repository.BoolPtr(true)})
	if len(venues) != 6 {
		t.Fatalf("active venues = %d, want 6", len(venues))
	}

	v, err := store.Venues.ByID(ctx, "venue-006")
	if err != nil {
		t.Fatal(err)
	}
	if v.BasePrice != 2000 || v.SuperVideoPrice != 400 || len(v.Slots) != 16 || v.Slots[0].Price != 2000 {
		t.Errorf("venue-006 = %+v", v)
	}
}
