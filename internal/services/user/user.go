package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/apperror"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/services"
)

const (
	userNotFound  = "User not found"
	adminNotFound = "Admin not found"

	recentBookingsLimit = 10
	adminListLimit      = 100
)

// Service manages users and admin accounts from the admin panel.
type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) SetupRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", s.ListUsers)
	admin.GET("/users/:id", s.GetUser)
	admin.GET("/users/:id/stats", s.GetUserStats)
	admin.POST("/users", s.CreateUser)
	admin.PUT("/users/:id", s.UpdateUser)
	admin.DELETE("/users/:id", s.DeleteUser)

	admin.GET("/admins", s.ListAdmins)
	admin.POST("/admins", s.CreateAdmin)
	admin.PUT("/admins/:id", s.UpdateAdmin)
	admin.DELETE("/admins/:id", s.DeleteAdmin)
}

func (s *Service) ListUsers(c *gin.Context) {
	users, err := s.store.Users.List(c.Request.Context(), repository.UserFilter{
		Search: c.Query("search"),
		Limit:  services.AdminListLimit,
	})
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Service) GetUser(c *gin.Context) {
	user, err := s.store.Users.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Service) GetUserStats(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := s.store.Users.ByID(ctx, c.Param("id"))
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}

	mine := repository.BookingFilter{UserID: user.ID}
	totalBookings, err := s.store.Bookings.Count(ctx, mine)
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	completed, err := s.store.Bookings.Count(ctx, repository.BookingFilter{
		UserID: user.ID,
		Status: string(models.StatusCompleted),
	})
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	spent, err := s.store.Bookings.SumTotalPrice(ctx, mine)
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	totalVideos, err := s.store.Videos.Count(ctx, repository.VideoFilter{UserID: user.ID})
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	recent, err := s.store.Bookings.List(ctx, repository.BookingFilter{
		UserID: user.ID,
		Limit:  recentBookingsLimit,
	})
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":               user,
		"total_bookings":     totalBookings,
		"completed_bookings": completed,
		"total_spent":        spent,
		"total_videos":       totalVideos,
		"recent_bookings":    recent,
	})
}

func (s *Service) CreateUser(c *gin.Context) {
	var req models.UserCreate
	if !services.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	taken, err := s.store.Users.PhoneTaken(ctx, req.Phone, "")
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	if taken {
		apperror.Respond(c, apperror.Conflict("User with this phone already exists"))
		return
	}

	user := req.User()
	if err := s.store.Users.Create(ctx, &user); err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Service) UpdateUser(c *gin.Context) {
	var patch models.UserUpdate
	if !services.BindJSON(c, &patch) {
		return
	}
	user, err := services.UpdateUser(c.Request.Context(), s.store.Users, c.Param("id"), patch)
	if err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Service) DeleteUser(c *gin.Context) {
	if err := s.store.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		services.Fail(c, err, userNotFound)
		return
	}
	services.Deleted(c, "User deleted")
}

func (s *Service) ListAdmins(c *gin.Context) {
	admins, err := s.store.Admins.List(c.Request.Context(), adminListLimit)
	if err != nil {
		services.Fail(c, err, adminNotFound)
		return
	}
	c.JSON(http.StatusOK, admins)
}

func (s *Service) CreateAdmin(c *gin.Context) {
	var req models.AdminCreate
	if !services.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	taken, err := s.store.Admins.PhoneTaken(ctx, req.Phone, "")
	if err != nil {
		services.Fail(c, err, adminNotFound)
		return
	}
	if taken {
		apperror.Respond(c, apperror.Conflict("Admin with this phone already exists"))
		return
	}

	admin := req.Admin()
	if err := s.store.Admins.Create(ctx, &admin); err != nil {
		services.Fail(c, err, adminNotFound)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (s *Service) UpdateAdmin(c *gin.Context) {
	var patch models.AdminUpdate
	if !services.BindJSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		apperror.Respond(c, apperror.Validation("No fields to update"))
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	if patch.Phone != nil {
		taken, err := s.store.Admins.PhoneTaken(ctx, *patch.Phone, id)
		if err != nil {
			services.Fail(c, err, adminNotFound)
			return
		}
		if taken {
			apperror.Respond(c, apperror.Conflict("Phone number already in use"))
			return
		}
	}

	admin, err := s.store.Admins.Update(ctx, id, patch)
	if err != nil {
		services.Fail(c, err, adminNotFound)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (s *Service) DeleteAdmin(c *gin.Context) {
	if err := s.store.Admins.Delete(c.Request.Context(), c.Param("id")); err != nil {
		services.Fail(c, err, adminNotFound)
		return
	}
	services.Deleted(c, "Admin deleted")
}
