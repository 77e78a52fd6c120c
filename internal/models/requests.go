package models

import "gorm.io/datatypes"

type AdminCreate struct {
	Phone string  `json:"phone" binding:"required"`
	Name  string  `json:"name" binding:"required"`
	Email *string `json:"email"`
	Role  *string `json:"role" binding:"omitempty,oneof=admin superadmin"`
}

func (in AdminCreate) Admin() Admin {
	role := RoleAdmin
	if in.Role != nil {
		role = *in.Role
	}
	return Admin{Phone: in.Phone, Name: in.Name, Email: in.Email, Role: role}
}

type UserCreate struct {
	Phone string  `json:"phone" binding:"required"`
	Name  string  `json:"name" binding:"required"`
	Email *string `json:"email"`
}

func (in UserCreate) User() User {
	return User{Phone: in.Phone, Name: in.Name, Email: in.Email}
}

type VenueCreate struct {
	Name            string   `json:"name" binding:"required"`
	Location        string   `json:"location" binding:"required"`
	Address         *string  `json:"address"`
	Sport           string   `json:"sport" binding:"required"`
	Image           *string  `json:"image"`
	Images          []string `json:"images"`
	Rating          *float64 `json:"rating"`
	SmartRecording  *bool    `json:"smart_recording"`
	BasePrice       *float64 `json:"base_price" binding:"required"`
	SuperVideoPrice *float64 `json:"super_video_price"`
	Amenities       []string `json:"amenities"`
	Description     *string  `json:"description"`
	ContactPhone    *string  `json:"contact_phone"`
	ContactEmail    *string  `json:"contact_email"`
	OpeningTime     *string  `json:"opening_time"`
	ClosingTime     *string  `json:"closing_time"`
}

// Venue builds an active venue with its slots generated from the base price.
func (in VenueCreate) Venue() Venue {
	v := Venue{
		Name:            in.Name,
		Location:        in.Location,
		Address:         in.Address,
		Sport:           in.Sport,
		Image:           in.Image,
		Images:          datatypes.JSONSlice[string](in.Images),
		Rating:          DefaultVenueRating,
		SmartRecording:  true,
		BasePrice:       *in.BasePrice,
		SuperVideoPrice: DefaultSuperVideoPrice,
		Amenities:       datatypes.JSONSlice[string](in.Amenities),
		Description:     in.Description,
		ContactPhone:    in.ContactPhone,
		ContactEmail:    in.ContactEmail,
		OpeningTime:     DefaultOpeningTime,
		ClosingTime:     DefaultClosingTime,
		Slots:           GenerateSlots(*in.BasePrice),
		IsActive:        true,
	}
	if in.Rating != nil {
		v.Rating = *in.Rating
	}
	if in.SmartRecording != nil {
		v.SmartRecording = *in.SmartRecording
	}
	if in.SuperVideoPrice != nil {
		v.SuperVideoPrice = *in.SuperVideoPrice
	}
	if in.OpeningTime != nil {
		v.OpeningTime = *in.OpeningTime
	}
	if in.ClosingTime != nil {
		v.ClosingTime = *in.ClosingTime
	}
	return v
}

type BookingCreate struct {
	VenueID           string   `json:"venue_id" binding:"required"`
	VenueName         string   `json:"venue_name" binding:"required"`
	Date              string   `json:"date" binding:"required"`
	TimeSlot          string   `json:"time_slot" binding:"required"`
	Sport             string   `json:"sport" binding:"required"`
	SuperVideoEnabled bool     `json:"super_video_enabled"`
	TotalPrice        *float64 `json:"total_price" binding:"required"`
	UserID            string   `json:"user_id" binding:"required"`
	UserName          string   `json:"user_name" binding:"required"`
	Notes             *string  `json:"notes"`
}

func (in BookingCreate) Booking() Booking {
	return Booking{
		VenueID:           in.VenueID,
		VenueName:         in.VenueName,
		Date:              in.Date,
		TimeSlot:          in.TimeSlot,
		Sport:             in.Sport,
		SuperVideoEnabled: in.SuperVideoEnabled,
		TotalPrice:        *in.TotalPrice,
		UserID:            in.UserID,
		UserName:          in.UserName,
		Notes:             in.Notes,
		Status:            string(StatusConfirmed),
		VideoStatus:       VideoStatusPending,
	}
}

type VideoCreate struct {
	BookingID   *string `json:"booking_id"`
	VenueName   string  `json:"venue_name" binding:"required"`
	Sport       string  `json:"sport" binding:"required"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	VideoURL    *string `json:"video_url"`
	Duration    *int    `json:"duration"`
	UserID      string  `json:"user_id" binding:"required"`
	UserName    string  `json:"user_name" binding:"required"`
}

// Video builds a public, non-featured video with zeroed counters.
func (in VideoCreate) Video() Video {
	v := Video{
		BookingID:   in.BookingID,
		VenueName:   in.VenueName,
		Sport:       in.Sport,
		Title:       in.Title,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		VideoURL:    in.VideoURL,
		Duration:    DefaultVideoDuration,
		UserID:      in.UserID,
		UserName:    in.UserName,
		IsPublic:    true,
	}
	if in.Duration != nil {
		v.Duration = *in.Duration
	}
	return v
}
