package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonasLeetTheWay/clashon-go/internal/auth"
	"github.com/JonasLeetTheWay/clashon-go/internal/config"
	"github.com/JonasLeetTheWay/clashon-go/internal/logging"
	"github.com/JonasLeetTheWay/clashon-go/internal/metrics"
	"github.com/JonasLeetTheWay/clashon-go/internal/otp"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	authsvc "github.com/JonasLeetTheWay/clashon-go/internal/services/auth"
	"github.com/JonasLeetTheWay/clashon-go/internal/services/booking"
	"github.com/JonasLeetTheWay/clashon-go/internal/services/dashboard"
	"github.com/JonasLeetTheWay/clashon-go/internal/services/user"
	"github.com/JonasLeetTheWay/clashon-go/internal/services/venue"
	"github.com/JonasLeetTheWay/clashon-go/internal/services/video"
	"github.com/JonasLeetTheWay/clashon-go/internal/validation"
)

const (
	apiMessage = "ClashON API - Book Courts. Capture Glory."
	apiVersion = "2.0"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Config *config.Config
	Store  repository.Store
	OTP    *otp.Service
	// Access guards /api/admin. Nil means auth.CheckFor(Config).
	Access auth.AccessCheck
	Health map[string]HealthCheck
}

// New builds the router with every route mounted.
func New(deps Deps) *gin.Engine {
	validation.Register()

	access := deps.Access
	if access == nil {
		access = auth.CheckFor(deps.Config)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware())
	r.Use(metrics.Middleware())

	// Add CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", deps.Config.CORSOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", healthHandler(deps.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/", bannerHandler(deps.OTP))

	admin := api.Group("/admin")
	admin.Use(auth.Middleware(access))

	// Setup routes
	authsvc.NewService(deps.Config, deps.Store, deps.OTP).SetupRoutes(api)
	venue.NewService(deps.Store.Venues).SetupRoutes(api, admin)
	booking.NewService(deps.Store.Bookings).SetupRoutes(api, admin)
	video.NewService(deps.Store.Videos).SetupRoutes(api, admin)
	user.NewService(deps.Store).SetupRoutes(admin)
	dashboard.NewService(deps.Store).SetupRoutes(admin)

	return r
}

func bannerHandler(otpService *otp.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var demoOTP interface{}
		if otpService.DemoMode() {
			demoOTP = otpService.DemoCode()
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   apiMessage,
			"version":   apiVersion,
			"status":    "active",
			"demo_mode": otpService.DemoMode(),
			"demo_otp":  demoOTP,
		})
	}
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":    state,
			"service":   "clashon-api",
			"checks":    results,
			"timestamp": time.Now().UTC(),
		})
	}
}
