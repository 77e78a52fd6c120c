package models

import "gorm.io/datatypes"

// Update payloads only carry the fields a caller sent. Fields returns the
// column/value pairs for a partial update and Apply merges the same fields
// into an existing record.

func put[T any](fields map[string]interface{}, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func assignPtr[T any](dst **T, v *T) {
	if v != nil {
		val := *v
		*dst = &val
	}
}

type AdminUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role" binding:"omitempty,oneof=admin superadmin"`
	Phone *string `json:"phone"`
}

func (p AdminUpdate) IsEmpty() bool { return len(p.Fields()) == 0 }

func (p AdminUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put(fields, "name", p.Name)
	put(fields, "email", p.Email)
	put(fields, "role", p.Role)
	put(fields, "phone", p.Phone)
	return fields
}

func (p AdminUpdate) Apply(a Admin) Admin {
	assign(&a.Name, p.Name)
	assignPtr(&a.Email, p.Email)
	assign(&a.Role, p.Role)
	assign(&a.Phone, p.Phone)
	return a
}

type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (p UserUpdate) IsEmpty() bool { return len(p.Fields()) == 0 }

func (p UserUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put(fields, "name", p.Name)
	put(fields, "email", p.Email)
	put(fields, "phone", p.Phone)
	return fields
}

func (p UserUpdate) Apply(u User) User {
	assign(&u.Name, p.Name)
	assignPtr(&u.Email, p.Email)
	assign(&u.Phone, p.Phone)
	return u
}

type VenueUpdate struct {
	Name            *string  `json:"name"`
	Location        *string  `json:"location"`
	Address         *string  `json:"address"`
	Sport           *string  `json:"sport"`
	Image           *string  `json:"image"`
	Images          []string `json:"images"`
	Rating          *float64 `json:"rating"`
	SmartRecording  *bool    `json:"smart_recording"`
	BasePrice       *float64 `json:"base_price"`
	SuperVideoPrice *float64 `json:"super_video_price"`
	Amenities       []string `json:"amenities"`
	Description     *string  `json:"description"`
	ContactPhone    *string  `json:"contact_phone"`
	ContactEmail    *string  `json:"contact_email"`
	OpeningTime     *string  `json:"opening_time"`
	ClosingTime     *string  `json:"closing_time"`
	IsActive        *bool    `json:"is_active"`

	// Slots is filled in by the server when the base price changes.
	Slots []TimeSlot `json:"-"`
}

func (p VenueUpdate) IsEmpty() bool { return len(p.Fields()) == 0 }

func (p VenueUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put(fields, "name", p.Name)
	put(fields, "location", p.Location)
	put(fields, "address", p.Address)
	put(fields, "sport", p.Sport)
	put(fields, "image", p.Image)
	if p.Images != nil {
		fields["images"] = datatypes.JSONSlice[string](p.Images)
	}
	put(fields, "rating", p.Rating)
	put(fields, "smart_recording", p.SmartRecording)
	put(fields, "base_price", p.BasePrice)
	put(fields, "super_video_price", p.SuperVideoPrice)
	if p.Amenities != nil {
		fields["amenities"] = datatypes.JSONSlice[string](p.Amenities)
	}
	put(fields, "description", p.Description)
	put(fields, "contact_phone", p.ContactPhone)
	put(fields, "contact_email", p.ContactEmail)
	put(fields, "opening_time", p.OpeningTime)
	put(fields, "closing_time", p.ClosingTime)
	put(fields, "is_active", p.IsActive)
	if p.Slots != nil {
		fields["slots"] = datatypes.JSONSlice[TimeSlot](p.Slots)
	}
	return fields
}

func (p VenueUpdate) Apply(v Venue) Venue {
	assign(&v.Name, p.Name)
	assign(&v.Location, p.Location)
	assignPtr(&v.Address, p.Address)
	assign(&v.Sport, p.Sport)
	assignPtr(&v.Image, p.Image)
	if p.Images != nil {
		v.Images = append(datatypes.JSONSlice[string]{}, p.Images...)
	}
	assign(&v.Rating, p.Rating)
	assign(&v.SmartRecording, p.SmartRecording)
	assign(&v.BasePrice, p.BasePrice)
	assign(&v.SuperVideoPrice, p.SuperVideoPrice)
	if p.Amenities != nil {
		v.Amenities = append(datatypes.JSONSlice[string]{}, p.Amenities...)
	}
	assignPtr(&v.Description, p.Description)
	assignPtr(&v.ContactPhone, p.ContactPhone)
	assignPtr(&v.ContactEmail, p.ContactEmail)
	assign(&v.OpeningTime, p.OpeningTime)
	assign(&v.ClosingTime, p.ClosingTime)
	assign(&v.IsActive, p.IsActive)
	if p.Slots != nil {
		v.Slots = append(datatypes.JSONSlice[TimeSlot]{}, p.Slots...)
	}
	return v
}

type BookingUpdate struct {
	Date              *string  `json:"date"`
	TimeSlot          *string  `json:"time_slot"`
	Status            *string  `json:"status"`
	VideoStatus       *string  `json:"video_status"`
	VideoURL          *string  `json:"video_url"`
	SuperVideoEnabled *bool    `json:"super_video_enabled"`
	TotalPrice        *float64 `json:"total_price"`
	Notes             *string  `json:"notes"`
}

func (p BookingUpdate) IsEmpty() bool { return len(p.Fields()) == 0 }

func (p BookingUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put(fields, "date", p.Date)
	put(fields, "time_slot", p.TimeSlot)
	put(fields, "status", p.Status)
	put(fields, "video_status", p.VideoStatus)
	put(fields, "video_url", p.VideoURL)
	put(fields, "super_video_enabled", p.SuperVideoEnabled)
	put(fields, "total_price", p.TotalPrice)
	put(fields, "notes", p.Notes)
	return fields
}

func (p BookingUpdate) Apply(b Booking) Booking {
	assign(&b.Date, p.Date)
	assign(&b.TimeSlot, p.TimeSlot)
	assign(&b.Status, p.Status)
	assign(&b.VideoStatus, p.VideoStatus)
	assignPtr(&b.VideoURL, p.VideoURL)
	assign(&b.SuperVideoEnabled, p.SuperVideoEnabled)
	assign(&b.TotalPrice, p.TotalPrice)
	assignPtr(&b.Notes, p.Notes)
	return b
}

type VideoUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	VideoURL    *string `json:"video_url"`
	IsFeatured  *bool   `json:"is_featured"`
	IsPublic    *bool   `json:"is_public"`
}

func (p VideoUpdate) IsEmpty() bool { return len(p.Fields()) == 0 }

func (p VideoUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put(fields, "title", p.Title)
	put(fields, "description", p.Description)
	put(fields, "thumbnail", p.Thumbnail)
	put(fields, "video_url", p.VideoURL)
	put(fields, "is_featured", p.IsFeatured)
	put(fields, "is_public", p.IsPublic)
	return fields
}

func (p VideoUpdate) Apply(v Video) Video {
	assignPtr(&v.Title, p.Title)
	assignPtr(&v.Description, p.Description)
	assignPtr(&v.Thumbnail, p.Thumbnail)
	assignPtr(&v.VideoURL, p.VideoURL)
	assign(&v.IsFeatured, p.IsFeatured)
	assign(&v.IsPublic, p.IsPublic)
	return v
}
