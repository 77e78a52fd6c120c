package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/apperror"
	"github.com/JonasLeetTheWay/clashon-go/internal/metrics"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/services"
)

const notFound = "Booking not found"

type Service struct {
	bookings repository.BookingRepository
}

func NewService(bookings repository.BookingRepository) *Service {
	return &Service{bookings: bookings}
}

func (s *Service) SetupRoutes(api, admin *gin.RouterGroup) {
	api.POST("/bookings", s.CreateBooking)
	api.GET("/bookings", s.listBookings(services.PublicListLimit))
	api.GET("/bookings/:id", s.GetBooking)
	api.PUT("/bookings/:id/video-status", s.UpdateVideoStatus)

	admin.GET("/bookings", s.listBookings(services.AdminListLimit))
	admin.GET("/bookings/:id", s.GetBooking)
	admin.POST("/bookings", s.CreateBooking)
	admin.PUT("/bookings/:id", s.UpdateBooking)
	admin.PUT("/bookings/:id/status", s.UpdateStatus)
	admin.DELETE("/bookings/:id", s.DeleteBooking)
}

// CreateBooking stores a confirmed booking with a fresh 6-digit pin.
// venue_id and user_id are taken as given.
func (s *Service) CreateBooking(c *gin.Context) {
	var req models.BookingCreate
	if !services.BindJSON(c, &req) {
		return
	}

	booking := req.Booking()
	if err := s.bookings.Create(c.Request.Context(), &booking); err != nil {
		services.Fail(c, err, notFound)
		return
	}
	metrics.BookingsCreated.Inc()

	c.JSON(http.StatusOK, booking)
}

func (s *Service) listBookings(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := s.bookings.List(c.Request.Context(), repository.BookingFilter{
			Status:  c.Query("status"),
			UserID:  c.Query("user_id"),
			VenueID: c.Query("venue_id"),
			Date:    c.Query("date"),
			Limit:   limit,
		})
		if err != nil {
			services.Fail(c, err, notFound)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

func (s *Service) GetBooking(c *gin.Context) {
	booking, err := s.bookings.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateVideoStatus sets video_status and, when given, video_url. The
// value is not checked against a fixed set.
func (s *Service) UpdateVideoStatus(c *gin.Context) {
	status := services.QueryOrBody(c, "status")
	if status == "" {
		apperror.Respond(c, apperror.Validation("status is required"))
		return
	}

	patch := models.BookingUpdate{VideoStatus: &status}
	if url := services.QueryOrBody(c, "video_url"); url != "" {
		patch.VideoURL = &url
	}
	if _, err := s.bookings.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

func (s *Service) UpdateBooking(c *gin.Context) {
	var patch models.BookingUpdate
	if !services.BindJSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		apperror.Respond(c, apperror.Validation("No fields to update"))
		return
	}
	if patch.Status != nil && !models.ValidBookingStatus(*patch.Status) {
		apperror.Respond(c, apperror.Validation("Invalid status"))
		return
	}

	booking, err := s.bookings.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (s *Service) UpdateStatus(c *gin.Context) {
	status := services.QueryOrBody(c, "status")
	if !models.ValidBookingStatus(status) {
		apperror.Respond(c, apperror.Validation("Invalid status"))
		return
	}

	if _, err := s.bookings.Update(c.Request.Context(), c.Param("id"), models.BookingUpdate{Status: &status}); err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

func (s *Service) DeleteBooking(c *gin.Context) {
	if err := s.bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		services.Fail(c, err, notFound)
		return
	}
	services.Deleted(c, "Booking deleted")
}
