// Package memory is an in-process implementation of the repository
// interfaces, used by the memory store driver and by handler tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
)

// NewStore returns an empty store.
func NewStore() repository.Store {
	return repository.Store{
		Admins:   NewAdminRepository(),
		Users:    NewUserRepository(),
		Venues:   NewVenueRepository(),
		Bookings: NewBookingRepository(),
		Videos:   NewVideoRepository(),
	}
}

type AdminRepository struct {
	t *table[models.Admin]
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{t: newTable(
		func(a *models.Admin) string { return a.ID },
		func(a *models.Admin) time.Time { return a.CreatedAt },
		nil,
	)}
}

func (r *AdminRepository) Create(_ context.Context, a *models.Admin) error {
	a.Prepare()
	r.t.insert(*a)
	return nil
}

func (r *AdminRepository) ByID(_ context.Context, id string) (*models.Admin, error) {
	a, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AdminRepository) ByPhone(_ context.Context, phone string) (*models.Admin, error) {
	a, ok := r.t.find(func(a *models.Admin) bool { return a.Phone == phone })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AdminRepository) PhoneTaken(_ context.Context, phone, excludeID string) (bool, error) {
	_, ok := r.t.find(func(a *models.Admin) bool { return a.Phone == phone && a.ID != excludeID })
	return ok, nil
}

func (r *AdminRepository) List(_ context.Context, limit int) ([]models.Admin, error) {
	return r.t.list(nil, limit), nil
}

func (r *AdminRepository) Update(_ context.Context, id string, patch models.AdminUpdate) (*models.Admin, error) {
	a, ok := r.t.update(id, patch.Apply)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AdminRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AdminRepository) Count(_ context.Context) (int64, error) {
	return r.t.count(nil), nil
}

type UserRepository struct {
	t *table[models.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{t: newTable(
		func(u *models.User) string { return u.ID },
		func(u *models.User) time.Time { return u.CreatedAt },
		nil,
	)}
}

func (r *UserRepository) Create(_ context.Context, u *models.User) error {
	u.Prepare()
	r.t.insert(*u)
	return nil
}

func (r *UserRepository) ByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) ByPhone(_ context.Context, phone string) (*models.User, error) {
	u, ok := r.t.find(func(u *models.User) bool { return u.Phone == phone })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) PhoneTaken(_ context.Context, phone, excludeID string) (bool, error) {
	_, ok := r.t.find(func(u *models.User) bool { return u.Phone == phone && u.ID != excludeID })
	return ok, nil
}

func (r *UserRepository) List(_ context.Context, filter repository.UserFilter) ([]models.User, error) {
	var match func(*models.User) bool
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		match = func(u *models.User) bool {
			if strings.Contains(strings.ToLower(u.Name), needle) || strings.Contains(strings.ToLower(u.Phone), needle) {
				return true
			}
			return u.Email != nil && strings.Contains(strings.ToLower(*u.Email), needle)
		}
	}
	return r.t.list(match, filter.Limit), nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch models.UserUpdate) (*models.User, error) {
	u, ok := r.t.update(id, patch.Apply)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	return r.t.count(nil), nil
}

type VenueRepository struct {
	t *table[models.Venue]
}

func NewVenueRepository() *VenueRepository {
	return &VenueRepository{t: newTable(
		func(v *models.Venue) string { return v.ID },
		func(v *models.Venue) time.Time { return v.CreatedAt },
		cloneVenue,
	)}
}

func cloneVenue(v models.Venue) models.Venue {
	v.Images = append(datatypes.JSONSlice[string]{}, v.Images...)
	v.Amenities = append(datatypes.JSONSlice[string]{}, v.Amenities...)
	v.Slots = append(datatypes.JSONSlice[models.TimeSlot]{}, v.Slots...)
	return v
}

func venueMatch(f repository.VenueFilter) func(*models.Venue) bool {
	return func(v *models.Venue) bool {
		if f.IsActive != nil && v.IsActive != *f.IsActive {
			return false
		}
		return f.Sport == "" || v.Sport == f.Sport
	}
}

func (r *VenueRepository) Create(_ context.Context, v *models.Venue) error {
	v.Prepare()
	r.t.insert(*v)
	return nil
}

func (r *VenueRepository) ByID(_ context.Context, id string) (*models.Venue, error) {
	v, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (r *VenueRepository) List(_ context.Context, filter repository.VenueFilter) ([]models.Venue, error) {
	return r.t.list(venueMatch(filter), filter.Limit), nil
}

func (r *VenueRepository) Update(_ context.Context, id string, patch models.VenueUpdate) (*models.Venue, error) {
	v, ok := r.t.update(id, patch.Apply)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (r *VenueRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VenueRepository) Count(_ context.Context, filter repository.VenueFilter) (int64, error) {
	return r.t.count(venueMatch(filter)), nil
}

type BookingRepository struct {
	t *table[models.Booking]
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{t: newTable(
		func(b *models.Booking) string { return b.ID },
		func(b *models.Booking) time.Time { return b.CreatedAt },
		nil,
	)}
}

func bookingMatch(f repository.BookingFilter) func(*models.Booking) bool {
	return func(b *models.Booking) bool {
		switch {
		case f.Status != "" && b.Status != f.Status:
			return false
		case f.UserID != "" && b.UserID != f.UserID:
			return false
		case f.VenueID != "" && b.VenueID != f.VenueID:
			return false
		case f.Date != "" && b.Date != f.Date:
			return false
		}
		return true
	}
}

func (r *BookingRepository) Create(_ context.Context, b *models.Booking) error {
	b.Prepare()
	r.t.insert(*b)
	return nil
}

func (r *BookingRepository) ByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepository) List(_ context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	return r.t.list(bookingMatch(filter), filter.Limit), nil
}

func (r *BookingRepository) Update(_ context.Context, id string, patch models.BookingUpdate) (*models.Booking, error) {
	b, ok := r.t.update(id, patch.Apply)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Count(_ context.Context, filter repository.BookingFilter) (int64, error) {
	return r.t.count(bookingMatch(filter)), nil
}

func (r *BookingRepository) SumTotalPrice(_ context.Context, filter repository.BookingFilter) (float64, error) {
	var total float64
	for _, b := range r.t.list(bookingMatch(filter), filter.Limit) {
		total += b.TotalPrice
	}
	return total, nil
}

type VideoRepository struct {
	t *table[models.Video]
}

func NewVideoRepository() *VideoRepository {
	return &VideoRepository{t: newTable(
		func(v *models.Video) string { return v.ID },
		func(v *models.Video) time.Time { return v.CreatedAt },
		nil,
	)}
}

func videoMatch(f repository.VideoFilter) func(*models.Video) bool {
	return func(v *models.Video) bool {
		switch {
		case f.UserID != "" && v.UserID != f.UserID:
			return false
		case f.Sport != "" && v.Sport != f.Sport:
			return false
		case f.IsFeatured != nil && v.IsFeatured != *f.IsFeatured:
			return false
		case f.IsPublic != nil && v.IsPublic != *f.IsPublic:
			return false
		}
		return true
	}
}

func (r *VideoRepository) Create(_ context.Context, v *models.Video) error {
	v.Prepare()
	r.t.insert(*v)
	return nil
}

func (r *VideoRepository) ByID(_ context.Context, id string) (*models.Video, error) {
	v, ok := r.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (r *VideoRepository) List(_ context.Context, filter repository.VideoFilter) ([]models.Video, error) {
	return r.t.list(videoMatch(filter), filter.Limit), nil
}

func (r *VideoRepository) Update(_ context.Context, id string, patch models.VideoUpdate) (*models.Video, error) {
	v, ok := r.t.update(id, patch.Apply)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (r *VideoRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) Count(_ context.Context, filter repository.VideoFilter) (int64, error) {
	return r.t.count(videoMatch(filter)), nil
}

func (r *VideoRepository) Increment(_ context.Context, id string, counter repository.Counter) error {
	if !counter.Valid() {
		return fmt.Errorf("unknown counter %q", counter)
	}
	_, ok := r.t.update(id, func(v models.Video) models.Video {
		switch counter {
		case repository.CounterLikes:
			v.Likes++
		case repository.CounterViews:
			v.Views++
		}
		return v
	})
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}
