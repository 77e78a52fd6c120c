// Package repository defines the document collections the API reads and
// writes. Implementations live in the memory and postgres subpackages.
package repository

import (
	"context"
	"errors"

	"github.com/JonasLeetTheWay/clashon-go/internal/models"
)

// ErrNotFound is returned when no document matches the given id.
var ErrNotFound = errors.New("record not found")

type Counter string

const (
	CounterLikes Counter = "likes"
	CounterViews Counter = "views"
)

func (c Counter) Valid() bool {
	return c == CounterLikes || c == CounterViews
}

type VenueFilter struct {
	IsActive *bool
	Sport    string
	Limit    int
}

type BookingFilter struct {
	Status  string
	UserID  string
	VenueID string
	Date    string
	Limit   int
}

type VideoFilter struct {
	UserID     string
	Sport      string
	IsFeatured *bool
	IsPublic   *bool
	Limit      int
}

// UserFilter.Search matches name, phone or email, case-insensitively.
type UserFilter struct {
	Search string
	Limit  int
}

type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	ByID(ctx context.Context, id string) (*models.Admin, error)
	ByPhone(ctx context.Context, phone string) (*models.Admin, error)
	PhoneTaken(ctx context.Context, phone, excludeID string) (bool, error)
	List(ctx context.Context, limit int) ([]models.Admin, error)
	Update(ctx context.Context, id string, patch models.AdminUpdate) (*models.Admin, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByPhone(ctx context.Context, phone string) (*models.User, error)
	PhoneTaken(ctx context.Context, phone, excludeID string) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type VenueRepository interface {
	Create(ctx context.Context, v *models.Venue) error
	ByID(ctx context.Context, id string) (*models.Venue, error)
	List(ctx context.Context, filter VenueFilter) ([]models.Venue, error)
	Update(ctx context.Context, id string, patch models.VenueUpdate) (*models.Venue, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter VenueFilter) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	ByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	Update(ctx context.Context, id string, patch models.BookingUpdate) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	// SumTotalPrice returns 0 when no booking matches.
	SumTotalPrice(ctx context.Context, filter BookingFilter) (float64, error)
}

type VideoRepository interface {
	Create(ctx context.Context, v *models.Video) error
	ByID(ctx context.Context, id string) (*models.Video, error)
	List(ctx context.Context, filter VideoFilter) ([]models.Video, error)
	Update(ctx context.Context, id string, patch models.VideoUpdate) (*models.Video, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter VideoFilter) (int64, error)
	// Increment adds one to the counter without a read-modify-write race.
	Increment(ctx context.Context, id string, counter Counter) error
}

// Store groups the collections a server needs.
type Store struct {
	Admins   AdminRepository
	Users    UserRepository
	Venues   VenueRepository
	Bookings BookingRepository
	Videos   VideoRepository
}

func BoolPtr(b bool) *bool { return &b }
