package config

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config holds process-wide settings read once at startup. It is
// immutable after FromEnv returns; nothing reads the environment later.
type Config struct {
	Port         string
	DashboardURL string

	JWTSecret     string
	JWTExpiration time.Duration

	// Bootstrap identity: logging in with this email/password pair
	// auto-provisions (or repairs) the admin account.
	AdminEmail    string
	AdminPassword string
}

const (
	defaultPort          = "5000"
	defaultJWTSecret     = "secret"
	defaultJWTExpiration = 24 * time.Hour
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "Admin123"
)

// FromEnv builds the configuration from environment variables. Every
// value has a default so the server starts in development with nothing
// set, but JWT_SECRET, DEFAULT_ADMIN_EMAIL and DEFAULT_ADMIN_PASSWORD
// must be overridden in production.
func FromEnv() *Config {
	cfg := &Config{
		Port:          getenv("PORT", defaultPort),
		DashboardURL:  os.Getenv("DASHBOARD_URL"),
		JWTSecret:     getenv("JWT_SECRET", defaultJWTSecret),
		JWTExpiration: defaultJWTExpiration,
		AdminEmail:    getenv("DEFAULT_ADMIN_EMAIL", defaultAdminEmail),
		AdminPassword: getenv("DEFAULT_ADMIN_PASSWORD", defaultAdminPassword),
	}

	if raw := os.Getenv("JWT_EXPIRATION"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.WithFields(log.Fields{"value": raw}).Warn("Invalid JWT_EXPIRATION, using default 24h")
		} else {
			cfg.JWTExpiration = d
		}
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Warn("JWT_SECRET not set, using insecure default")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
