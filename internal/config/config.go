package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database Configuration
	Database DatabaseConfig

	// HTTP Configuration
	HTTP HTTPConfig

	// Admin bootstrap (optional, used to seed the first superuser)
	Admin AdminConfig

	// Logging Configuration
	Logging LoggingConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port string
}

// AdminConfig holds the optional superuser bootstrap credentials.
// Registration never creates admins, so the first superuser is seeded
// from these variables on startup if no users exist yet.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// Database URL - default to a local sqlite file, allow override for dev
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "itemhub.sqlite"
	}

	// HTTP port - the web frontend historically pointed at :8000
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// Logging configuration - defaults suitable for production
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		Database: DatabaseConfig{
			URL: dbURL,
		},
		HTTP: HTTPConfig{
			Port: port,
		},
		Admin: AdminConfig{
			Username: os.Getenv("ITEMHUB_ADMIN_USERNAME"),
			Email:    os.Getenv("ITEMHUB_ADMIN_EMAIL"),
			Password: os.Getenv("ITEMHUB_ADMIN_PASSWORD"),
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
