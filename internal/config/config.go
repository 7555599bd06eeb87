package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Env  string `env:"APP_ENV" env-default:"development"`
	Port string `env:"PORT" env-default:"3000"`

	// Storage
	Storage       string        `env:"STORAGE" env-default:"mongo"`
	MongoURI      string        `env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase string        `env:"MONGODB_DATABASE" env-default:"finance_tracker"`
	MongoTimeout  time.Duration `env:"MONGODB_TIMEOUT" env-default:"10s"`
	MongoMaxPool  uint64        `env:"MONGODB_MAX_POOL" env-default:"50"`

	// JWT
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" env-default:"24h"`

	// Google OAuth
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL" env-default:"http://localhost:3000/api/auth/google/callback"`
	SessionSecret      string `env:"SESSION_SECRET"`

	// HTTP
	CORSOrigins      string        `env:"CORS_ORIGINS" env-default:"*"`
	RateLimitMax     int           `env:"RATE_LIMIT_MAX" env-default:"100"`
	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"15m"`
	AuthRateLimitMax int           `env:"AUTH_RATE_LIMIT_MAX" env-default:"20"`

	// Admin
	AdminEmails string `env:"ADMIN_EMAILS"`

	// Logging
	LogLevel         string `env:"LOG_LEVEL" env-default:"info"`
	LogDatabaseURL   string `env:"LOG_DATABASE_URL"`
	LogRetentionDays int    `env:"LOG_RETENTION_DAYS" env-default:"30"`

	SentryDSN string `env:"SENTRY_DSN"`

	ProfessionalProfilePath string `env:"PROFESSIONAL_PROFILE_PATH"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = EnvDevelopment
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if cfg.Storage == "" {
		cfg.Storage = StorageMongo
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.Storage != StorageMongo && c.Storage != StorageMemory {
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMongo, StorageMemory, c.Storage)
	}
	if c.Storage == StorageMemory && c.IsProduction() {
		return errors.New("in-memory storage is not allowed in production")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// GoogleOAuthEnabled reports whether both Google client credentials are set.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// StateSecret signs OAuth state tokens. Falls back to the JWT secret.
func (c *Config) StateSecret() string {
	if c.SessionSecret != "" {
		return c.SessionSecret
	}
	return c.JWTSecret
}

func (c *Config) AdminEmailList() []string {
	return parseCSV(c.AdminEmails)
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
