// Package postgres implements the repository interfaces on gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
)

// NewStore wires every collection to db. db must already be migrated.
func NewStore(db *gorm.DB) repository.Store {
	return repository.Store{
		Admins:   &AdminRepository{db: db},
		Users:    &UserRepository{db: db},
		Venues:   &VenueRepository{db: db},
		Bookings: &BookingRepository{db: db},
		Videos:   &VideoRepository{db: db},
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

func byID[T any](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func find[T any](q *gorm.DB, limit int) ([]T, error) {
	out := make([]T, 0)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]T, 0)
	}
	return out, nil
}

// update applies fields and returns the stored record afterwards.
func update[T any](ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (*T, error) {
	if len(fields) > 0 {
		res := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, repository.ErrNotFound
		}
	}
	return byID[T](ctx, db, id)
}

func remove[T any](ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func phoneTaken[T any](ctx context.Context, db *gorm.DB, phone, excludeID string) (bool, error) {
	var n int64
	q := db.WithContext(ctx).Model(new(T)).Where("phone = ?", phone)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func byPhone[T any](ctx context.Context, db *gorm.DB, phone string) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where("phone = ?", phone).Order("created_at ASC").First(&out).Error; err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func count[T any](q *gorm.DB) (int64, error) {
	var n int64
	err := q.Model(new(T)).Count(&n).Error
	return n, err
}

type AdminRepository struct {
	db *gorm.DB
}

func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdminRepository) ByID(ctx context.Context, id string) (*models.Admin, error) {
	return byID[models.Admin](ctx, r.db, id)
}

func (r *AdminRepository) ByPhone(ctx context.Context, phone string) (*models.Admin, error) {
	return byPhone[models.Admin](ctx, r.db, phone)
}

func (r *AdminRepository) PhoneTaken(ctx context.Context, phone, excludeID string) (bool, error) {
	return phoneTaken[models.Admin](ctx, r.db, phone, excludeID)
}

func (r *AdminRepository) List(ctx context.Context, limit int) ([]models.Admin, error) {
	return find[models.Admin](r.db.WithContext(ctx), limit)
}

func (r *AdminRepository) Update(ctx context.Context, id string, patch models.AdminUpdate) (*models.Admin, error) {
	return update[models.Admin](ctx, r.db, id, patch.Fields())
}

func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	return remove[models.Admin](ctx, r.db, id)
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	return count[models.Admin](r.db.WithContext(ctx))
}

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) ByID(ctx context.Context, id string) (*models.User, error) {
	return byID[models.User](ctx, r.db, id)
}

func (r *UserRepository) ByPhone(ctx context.Context, phone string) (*models.User, error) {
	return byPhone[models.User](ctx, r.db, phone)
}

func (r *UserRepository) PhoneTaken(ctx context.Context, phone, excludeID string) (bool, error) {
	return phoneTaken[models.User](ctx, r.db, phone, excludeID)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *UserRepository) List(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	q := r.db.WithContext(ctx)
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	return find[models.User](q, filter.Limit)
}

func (r *UserRepository) Update(ctx context.Context, id string, patch models.UserUpdate) (*models.User, error) {
	return update[models.User](ctx, r.db, id, patch.Fields())
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return remove[models.User](ctx, r.db, id)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return count[models.User](r.db.WithContext(ctx))
}

type VenueRepository struct {
	db *gorm.DB
}

func (r *VenueRepository) scope(ctx context.Context, f repository.VenueFilter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Sport != "" {
		q = q.Where("sport = ?", f.Sport)
	}
	return q
}

func (r *VenueRepository) Create(ctx context.Context, v *models.Venue) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VenueRepository) ByID(ctx context.Context, id string) (*models.Venue, error) {
	return byID[models.Venue](ctx, r.db, id)
}

func (r *VenueRepository) List(ctx context.Context, filter repository.VenueFilter) ([]models.Venue, error) {
	return find[models.Venue](r.scope(ctx, filter), filter.Limit)
}

func (r *VenueRepository) Update(ctx context.Context, id string, patch models.VenueUpdate) (*models.Venue, error) {
	return update[models.Venue](ctx, r.db, id, patch.Fields())
}

func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	return remove[models.Venue](ctx, r.db, id)
}

func (r *VenueRepository) Count(ctx context.Context, filter repository.VenueFilter) (int64, error) {
	return count[models.Venue](r.scope(ctx, filter))
}

type BookingRepository struct {
	db *gorm.DB
}

func (r *BookingRepository) scope(ctx context.Context, f repository.BookingFilter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.VenueID != "" {
		q = q.Where("venue_id = ?", f.VenueID)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	return q
}

func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) ByID(ctx context.Context, id string) (*models.Booking, error) {
	return byID[models.Booking](ctx, r.db, id)
}

func (r *BookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	return find[models.Booking](r.scope(ctx, filter), filter.Limit)
}

func (r *BookingRepository) Update(ctx context.Context, id string, patch models.BookingUpdate) (*models.Booking, error) {
	return update[models.Booking](ctx, r.db, id, patch.Fields())
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return remove[models.Booking](ctx, r.db, id)
}

func (r *BookingRepository) Count(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	return count[models.Booking](r.scope(ctx, filter))
}

func (r *BookingRepository) SumTotalPrice(ctx context.Context, filter repository.BookingFilter) (float64, error) {
	var total float64
	err := r.scope(ctx, filter).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum booking totals: %w", err)
	}
	return total, nil
}

type VideoRepository struct {
	db *gorm.DB
}

func (r *VideoRepository) scope(ctx context.Context, f repository.VideoFilter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Sport != "" {
		q = q.Where("sport = ?", f.Sport)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.IsPublic != nil {
		q = q.Where("is_public = ?", *f.IsPublic)
	}
	return q
}

func (r *VideoRepository) Create(ctx context.Context, v *models.Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VideoRepository) ByID(ctx context.Context, id string) (*models.Video, error) {
	return byID[models.Video](ctx, r.db, id)
}

func (r *VideoRepository) List(ctx context.Context, filter repository.VideoFilter) ([]models.Video, error) {
	return find[models.Video](r.scope(ctx, filter), filter.Limit)
}

func (r *VideoRepository) Update(ctx context.Context, id string, patch models.VideoUpdate) (*models.Video, error) {
	return update[models.Video](ctx, r.db, id, patch.Fields())
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	return remove[models.Video](ctx, r.db, id)
}

func (r *VideoRepository) Count(ctx context.Context, filter repository.VideoFilter) (int64, error) {
	return count[models.Video](r.scope(ctx, filter))
}

// Increment runs a single UPDATE ... SET col = col + 1 so concurrent
// callers never lose an increment.
func (r *VideoRepository) Increment(ctx context.Context, id string, counter repository.Counter) error {
	if !counter.Valid() {
		return fmt.Errorf("unknown counter %q", counter)
	}
	col := string(counter)
	res := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(col+" + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
