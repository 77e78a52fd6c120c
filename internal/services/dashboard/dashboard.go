package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/apperror"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
)

const recentLimit = 5

type Stats struct {
	TotalUsers        int64            `json:"total_users"`
	TotalVenues       int64            `json:"total_venues"`
	TotalBookings     int64            `json:"total_bookings"`
	TotalVideos       int64            `json:"total_videos"`
	TotalAdmins       int64            `json:"total_admins"`
	ConfirmedBookings int64            `json:"confirmed_bookings"`
	CompletedBookings int64            `json:"completed_bookings"`
	CancelledBookings int64            `json:"cancelled_bookings"`
	ActiveVenues      int64            `json:"active_venues"`
	TotalRevenue      float64          `json:"total_revenue"`
	RecentBookings    []models.Booking `json:"recent_bookings"`
	RecentUsers       []models.User    `json:"recent_users"`
}

type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) SetupRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard/stats", s.GetStats)
}

// GetStats recomputes every figure on each call. Any store failure is
// reported as a 500 carrying the raw error.
func (s *Service) GetStats(c *gin.Context) {
	stats, err := s.Collect(c.Request.Context())
	if err != nil {
		apperror.Respond(c, &apperror.Error{Kind: apperror.KindInternal, Message: err.Error(), Cause: err})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Service) Collect(ctx context.Context) (*Stats, error) {
	var (
		st  Stats
		err error
	)
	counts := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&st.TotalUsers, func() (int64, error) { return s.store.Users.Count(ctx) }},
		{&st.TotalVenues, func() (int64, error) { return s.store.Venues.Count(ctx, repository.VenueFilter{}) }},
		{&st.TotalBookings, func() (int64, error) { return s.store.Bookings.Count(ctx, repository.BookingFilter{}) }},
		{&st.TotalVideos, func() (int64, error) { return s.store.Videos.Count(ctx, repository.VideoFilter{}) }},
		{&st.TotalAdmins, func() (int64, error) { return s.store.Admins.Count(ctx) }},
		{&st.ConfirmedBookings, s.bookingsWithStatus(ctx, models.StatusConfirmed)},
		{&st.CompletedBookings, s.bookingsWithStatus(ctx, models.StatusCompleted)},
		{&st.CancelledBookings, s.bookingsWithStatus(ctx, models.StatusCancelled)},
		{&st.ActiveVenues, func() (int64, error) {
			return s.store.Venues.Count(ctx, repository.VenueFilter{IsActive: repository.BoolPtr(true)})
		}},
	}
	for _, count := range counts {
		if *count.dst, err = count.fn(); err != nil {
			return nil, err
		}
	}

	if st.TotalRevenue, err = s.store.Bookings.SumTotalPrice(ctx, repository.BookingFilter{}); err != nil {
		return nil, err
	}
	if st.RecentBookings, err = s.store.Bookings.List(ctx, repository.BookingFilter{Limit: recentLimit}); err != nil {
		return nil, err
	}
	if st.RecentUsers, err = s.store.Users.List(ctx, repository.UserFilter{Limit: recentLimit}); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) bookingsWithStatus(ctx context.Context, status models.BookingStatus) func() (int64, error) {
	return func() (int64, error) {
		return s.store.Bookings.Count(ctx, repository.BookingFilter{Status: string(status)})
	}
}
