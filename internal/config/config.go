package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
)

type Config struct {
	// Server
	Port       string `envconfig:"PORT" default:"8000"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`

	// Database
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:"password"`
	DBName      string `envconfig:"DB_NAME" default:"clashon"`

	// Redis
	OTPStoreDriver string `envconfig:"OTP_STORE_DRIVER" default:"redis"`
	RedisHost      string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort      string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD" default:""`

	// OTP
	DemoOTPMode bool          `envconfig:"DEMO_OTP_MODE" default:"true"`
	DemoOTP     string        `envconfig:"DEMO_OTP" default:"123456"`
	OTPTTL      time.Duration `envconfig:"OTP_TTL" default:"10m"`

	// JWT
	AdminAuthRequired bool          `envconfig:"ADMIN_AUTH_REQUIRED" default:"false"`
	JWTSecret         string        `envconfig:"JWT_SECRET" default:"your-secret-key-here"`
	JWTExpiry         time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.OTPStoreDriver {
	case DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown OTP_STORE_DRIVER %q", c.OTPStoreDriver)
	}
	if c.DemoOTPMode && c.DemoOTP == "" {
		return fmt.Errorf("DEMO_OTP must be set when DEMO_OTP_MODE is enabled")
	}
	if c.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be positive")
	}
	if c.AdminAuthRequired && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set when ADMIN_AUTH_REQUIRED is enabled")
	}
	return nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
