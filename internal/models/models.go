package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Booking and video defaults.
const (
	VideoStatusPending     = "pending"
	DefaultVideoDuration   = 45
	DefaultVenueRating     = 4.5
	DefaultSuperVideoPrice = 200
	DefaultOpeningTime     = "06:00 AM"
	DefaultClosingTime     = "10:00 PM"
)

type Admin struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Phone     string    `json:"phone" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Email     *string   `json:"email"`
	Role      string    `json:"role" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Phone     string    `json:"phone" gorm:"not null;index"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TimeSlot is embedded in a Venue and never stored on its own.
type TimeSlot struct {
	Time      string  `json:"time"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

type Venue struct {
	ID              string                        `json:"id" gorm:"primaryKey"`
	Name            string                        `json:"name" gorm:"not null"`
	Location        string                        `json:"location" gorm:"not null"`
	Address         *string                       `json:"address"`
	Sport           string                        `json:"sport" gorm:"not null;index"`
	Image           *string                       `json:"image"`
	Images          datatypes.JSONSlice[string]   `json:"images"`
	Rating          float64                       `json:"rating"`
	TotalReviews    int                           `json:"total_reviews"`
	SmartRecording  bool                          `json:"smart_recording"`
	BasePrice       float64                       `json:"base_price" gorm:"not null"`
	SuperVideoPrice float64                       `json:"super_video_price"`
	Amenities       datatypes.JSONSlice[string]   `json:"amenities"`
	Description     *string                       `json:"description"`
	ContactPhone    *string                       `json:"contact_phone"`
	ContactEmail    *string                       `json:"contact_email"`
	OpeningTime     string                        `json:"opening_time"`
	ClosingTime     string                        `json:"closing_time"`
	Slots           datatypes.JSONSlice[TimeSlot] `json:"slots"`
	IsActive        bool                          `json:"is_active" gorm:"index"`
	CreatedAt       time.Time                     `json:"created_at" gorm:"index"`
}

// Booking copies venue and user names at creation time; venue_id and
// user_id are not checked against their collections.
type Booking struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	VenueID           string    `json:"venue_id" gorm:"not null;index"`
	VenueName         string    `json:"venue_name"`
	Date              string    `json:"date" gorm:"index"`
	TimeSlot          string    `json:"time_slot"`
	Sport             string    `json:"sport"`
	SuperVideoEnabled bool      `json:"super_video_enabled"`
	TotalPrice        float64   `json:"total_price"`
	UserID            string    `json:"user_id" gorm:"not null;index"`
	UserName          string    `json:"user_name"`
	PinCode           string    `json:"pin_code" gorm:"size:6"`
	Status            string    `json:"status" gorm:"not null;index"`
	VideoStatus       string    `json:"video_status"`
	VideoURL          *string   `json:"video_url"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"created_at" gorm:"index"`
}

type Video struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	BookingID   *string   `json:"booking_id" gorm:"index"`
	VenueName   string    `json:"venue_name"`
	Sport       string    `json:"sport" gorm:"index"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Thumbnail   *string   `json:"thumbnail"`
	VideoURL    *string   `json:"video_url"`
	Duration    int       `json:"duration"`
	Likes       int       `json:"likes"`
	Views       int       `json:"views"`
	UserID      string    `json:"user_id" gorm:"not null;index"`
	UserName    string    `json:"user_name"`
	IsFeatured  bool      `json:"is_featured"`
	IsPublic    bool      `json:"is_public" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// OTPRecord is kept in the OTP store rather than in a table.
type OTPRecord struct {
	Phone     string    `json:"phone"`
	OTP       string    `json:"otp"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
}

// Expired reports whether the record is past its expiry at now.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

func stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}

// Prepare assigns the id and creation time when they are not set yet.
func (a *Admin) Prepare() { stamp(&a.ID, &a.CreatedAt) }

func (u *User) Prepare() { stamp(&u.ID, &u.CreatedAt) }

func (v *Venue) Prepare() {
	stamp(&v.ID, &v.CreatedAt)
	if v.Images == nil {
		v.Images = datatypes.JSONSlice[string]{}
	}
	if v.Amenities == nil {
		v.Amenities = datatypes.JSONSlice[string]{}
	}
	if v.Slots == nil {
		v.Slots = datatypes.JSONSlice[TimeSlot]{}
	}
}

func (b *Booking) Prepare() {
	stamp(&b.ID, &b.CreatedAt)
	if b.PinCode == "" {
		b.PinCode = GeneratePin()
	}
	if b.Status == "" {
		b.Status = string(StatusConfirmed)
	}
	if b.VideoStatus == "" {
		b.VideoStatus = VideoStatusPending
	}
}

func (v *Video) Prepare() { stamp(&v.ID, &v.CreatedAt) }

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	a.Prepare()
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Prepare()
	return nil
}

func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	v.Prepare()
	return nil
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	b.Prepare()
	return nil
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	v.Prepare()
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Admin{},
		&User{},
		&Venue{},
		&Booking{},
		&Video{},
	)
}
