package config

import (
	"errors"
	"time"
)

// APIConfig holds runtime configuration for the API service.
type APIConfig struct {
	Environment   string
	Addr          string
	DatabaseURL   string
	MigrationsDir string
	JWTSecret     string
	TokenTTL      time.Duration
	MaxPageSize   int
}

// ErrMissingJWTSecret aborts startup when no token signing secret is
// supplied.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET must be set")

// LoadAPIConfig constructs an APIConfig from environment variables. The
// signing secret has no baked-in default: a process without one refuses
// to start rather than issue tokens signed with a publicly known key.
func LoadAPIConfig() (APIConfig, error) {
	cfg := APIConfig{
		Environment:   GetString("APP_ENV", "development"),
		Addr:          GetString("API_ADDR", ":4000"),
		DatabaseURL:   GetString("DATABASE_URL", "postgres://taskdeck:taskdeck@db:5432/taskdeck?sslmode=disable"),
		MigrationsDir: GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		JWTSecret:     GetString("JWT_SECRET", ""),
		TokenTTL:      GetDuration("ACCESS_TOKEN_TTL", time.Hour),
		MaxPageSize:   GetInt("MAX_PAGE_SIZE", 200),
	}
	if cfg.JWTSecret == "" {
		return APIConfig{}, ErrMissingJWTSecret
	}
	return cfg, nil
}
