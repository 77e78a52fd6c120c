package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/apperror"
	jwtauth "github.com/JonasLeetTheWay/clashon-go/internal/auth"
	"github.com/JonasLeetTheWay/clashon-go/internal/config"
	"github.com/JonasLeetTheWay/clashon-go/internal/metrics"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/otp"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/services"
)

// User types returned by check-user-type.
const (
	UserTypeAdmin   = "admin"
	UserTypeUser    = "user"
	UserTypeNewUser = "new_user"
)

type Service struct {
	config *config.Config
	store  repository.Store
	otp    *otp.Service
}

func NewService(cfg *config.Config, store repository.Store, otpService *otp.Service) *Service {
	return &Service{
		config: cfg,
		store:  store,
		otp:    otpService,
	}
}

// SetupRoutes registers the login and profile routes on api. Admin login
// is registered here too so that it stays outside the admin gate.
func (s *Service) SetupRoutes(api *gin.RouterGroup) {
	api.POST("/auth/check-user-type", s.CheckUserType)
	api.POST("/auth/request-otp", s.RequestOTP)
	api.POST("/auth/verify-otp", s.VerifyOTP)
	api.GET("/auth/user/:id", s.GetProfile)
	api.PUT("/auth/user/:id", s.UpdateProfile)

	api.POST("/admin/auth/request-otp", s.AdminRequestOTP)
	api.POST("/admin/auth/verify-otp", s.AdminVerifyOTP)
}

type phoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
	Name  string `json:"name"`
}

func (s *Service) CheckUserType(c *gin.Context) {
	var req phoneRequest
	if !services.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	admin, err := s.store.Admins.ByPhone(ctx, req.Phone)
	if err == nil {
		name := admin.Name
		if name == "" {
			name = "Admin"
		}
		c.JSON(http.StatusOK, gin.H{"user_type": UserTypeAdmin, "name": name})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		services.Fail(c, err, "")
		return
	}

	user, err := s.store.Users.ByPhone(ctx, req.Phone)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"user_type": UserTypeUser, "name": user.Name})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		services.Fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_type": UserTypeNewUser, "name": ""})
}

func (s *Service) RequestOTP(c *gin.Context) {
	var req phoneRequest
	if !services.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	// Admin phones are sent to the admin login instead.
	_, err := s.store.Admins.ByPhone(ctx, req.Phone)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"is_admin": true,
			"message":  "This phone is registered as admin. Redirecting to admin login...",
		})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		services.Fail(c, err, "")
		return
	}

	if _, err := s.otp.Issue(ctx, otp.UserNamespace, req.Phone); err != nil {
		services.Fail(c, err, "")
		return
	}
	metrics.RecordOTPRequest("user")

	resp := gin.H{
		"success":  true,
		"is_admin": false,
		"message":  "OTP sent to " + req.Phone,
	}
	if s.otp.DemoMode() {
		resp["message"] = fmt.Sprintf("DEMO MODE: Use OTP %s to login", s.otp.DemoCode())
		resp["demo_otp"] = s.otp.DemoCode()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Service) VerifyOTP(c *gin.Context) {
	var req verifyRequest
	if !services.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	if !s.checkCode(c, otp.UserNamespace, "user", req.Phone, req.OTP) {
		return
	}

	user, err := s.store.Users.ByPhone(ctx, req.Phone)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &models.User{Phone: req.Phone, Name: req.Name}
		if err := s.store.Users.Create(ctx, user); err != nil {
			services.Fail(c, err, "")
			return
		}
	case err != nil:
		services.Fail(c, err, "")
		return
	case req.Name != "" && req.Name != user.Name:
		user, err = s.store.Users.Update(ctx, user.ID, models.UserUpdate{Name: &req.Name})
		if err != nil {
			services.Fail(c, err, "User not found")
			return
		}
	}
	metrics.RecordOTPVerification("user", "success")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

func (s *Service) AdminRequestOTP(c *gin.Context) {
	var req phoneRequest
	if !services.BindJSON(c, &req) {
		return
	}

	if _, err := s.otp.Issue(c.Request.Context(), otp.AdminNamespace, req.Phone); err != nil {
		services.Fail(c, err, "")
		return
	}
	metrics.RecordOTPRequest("admin")

	resp := gin.H{
		"success": true,
		"message": "OTP sent to " + req.Phone,
	}
	if s.otp.DemoMode() {
		resp["message"] = fmt.Sprintf("DEMO MODE: Use OTP %s to login as admin", s.otp.DemoCode())
		resp["demo_otp"] = s.otp.DemoCode()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Service) AdminVerifyOTP(c *gin.Context) {
	var req verifyRequest
	if !services.BindJSON(c, &req) {
		return
	}

	if !s.checkCode(c, otp.AdminNamespace, "admin", req.Phone, req.OTP) {
		return
	}

	admin, err := s.store.Admins.ByPhone(c.Request.Context(), req.Phone)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordOTPVerification("admin", "forbidden")
		apperror.Respond(c, apperror.Forbidden("Not authorized as admin"))
		return
	}
	if err != nil {
		services.Fail(c, err, "")
		return
	}
	metrics.RecordOTPVerification("admin", "success")

	resp := gin.H{
		"success": true,
		"message": "Admin login successful",
		"admin":   admin,
	}
	if s.config.AdminAuthRequired {
		token, err := jwtauth.GenerateToken(s.config, admin.ID, admin.Phone, admin.Role)
		if err != nil {
			services.Fail(c, fmt.Errorf("failed to generate token: %w", err), "")
			return
		}
		resp["token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

// checkCode verifies the code and writes the 400 on failure.
func (s *Service) checkCode(c *gin.Context, ns otp.Namespace, flow, phone, code string) bool {
	err := s.otp.Verify(c.Request.Context(), ns, phone, code)
	switch {
	case err == nil:
		return true
	case errors.Is(err, otp.ErrInvalidCode):
		metrics.RecordOTPVerification(flow, "invalid")
		msg := "Invalid OTP"
		if s.otp.DemoMode() {
			msg = fmt.Sprintf("Invalid OTP. Use %s for demo", s.otp.DemoCode())
		}
		apperror.Respond(c, apperror.Validation(msg))
	case errors.Is(err, otp.ErrExpired):
		metrics.RecordOTPVerification(flow, "expired")
		apperror.Respond(c, apperror.Validation("OTP expired"))
	default:
		services.Fail(c, err, "")
	}
	return false
}

func (s *Service) GetProfile(c *gin.Context) {
	user, err := s.store.Users.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		services.Fail(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Service) UpdateProfile(c *gin.Context) {
	var patch models.UserUpdate
	if !services.BindJSON(c, &patch) {
		return
	}
	user, err := services.UpdateUser(c.Request.Context(), s.store.Users, c.Param("id"), patch)
	if err != nil {
		services.Fail(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
