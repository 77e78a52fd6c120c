package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/JonasLeetTheWay/clashon-go/internal/config"
	"github.com/JonasLeetTheWay/clashon-go/internal/database"
	"github.com/JonasLeetTheWay/clashon-go/internal/logging"
	"github.com/JonasLeetTheWay/clashon-go/internal/otp"
	"github.com/JonasLeetTheWay/clashon-go/internal/redis"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository/memory"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository/postgres"
	"github.com/JonasLeetTheWay/clashon-go/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := map[string]server.HealthCheck{}

	// Open the document store
	var store repository.Store
	switch cfg.StoreDriver {
	case config.DriverMemory:
		store = memory.NewStore()
		if err := database.SeedData(ctx, store); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed in-memory store")
		}
		log.Warn().Msg("Using in-memory store; data is lost on restart")
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to access database handle")
		}
		defer sqlDB.Close()
		health["database"] = sqlDB.PingContext
		store = postgres.NewStore(db)
	}

	// Open the OTP store
	var otpStore otp.Store
	switch cfg.OTPStoreDriver {
	case config.DriverMemory:
		otpStore = otp.NewMemoryStore()
	default:
		client := redis.NewClient(cfg)
		if err := client.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr()).Msg("Failed to connect to Redis")
		}
		defer client.Close()
		health["redis"] = client.Ping
		otpStore = client
	}

	otpService := otp.NewService(otpStore, otp.Options{
		DemoMode: cfg.DemoOTPMode,
		DemoCode: cfg.DemoOTP,
		TTL:      cfg.OTPTTL,
	})

	r := server.New(server.Deps{
		Config: cfg,
		Store:  store,
		OTP:    otpService,
		Health: health,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("otp_store", cfg.OTPStoreDriver).
			Bool("demo_mode", cfg.DemoOTPMode).
			Bool("admin_auth", cfg.AdminAuthRequired).
			Msg("ClashON API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
