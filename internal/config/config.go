package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseURL string

	// DefaultUserID is used when a request carries no user_id.
	// Single-user mode is a configuration choice, not a hardcoded fallback.
	DefaultUserID int64

	Geocode struct {
		APIURL    string
		UserAgent string
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	defaultUserID := int64(1)
	if v := os.Getenv("DEFAULT_USER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DEFAULT_USER_ID must be an integer: %w", err)
		}
		defaultUserID = id
	}

	geocodeURL := os.Getenv("GEOCODE_API_URL")
	if geocodeURL == "" {
		geocodeURL = "https://nominatim.openstreetmap.org"
	}

	geocodeUA := os.Getenv("GEOCODE_USER_AGENT")
	if geocodeUA == "" {
		geocodeUA = "food-delivery-storefront/1.0"
	}

	cfg := &Config{
		ServerPort:    serverPort,
		DatabaseURL:   databaseURL,
		DefaultUserID: defaultUserID,
	}
	cfg.Geocode.APIURL = geocodeURL
	cfg.Geocode.UserAgent = geocodeUA

	return cfg, nil
}
