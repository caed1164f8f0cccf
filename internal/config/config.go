package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the engine reads from the environment. The
// system runs with zero configuration: every field has a working default and
// the only credential (WAQI token) is optional.
type AppConfig struct {
	Port string

	// WAQIToken enables the ground-station provider. Empty disables it
	// silently.
	WAQIToken string

	// HTTPTimeout applies to the shared outbound HTTP client.
	HTTPTimeout time.Duration

	// CacheTTL is the report cache freshness window.
	CacheTTL time.Duration

	// RefreshInterval drives the background refresh job. Defaults to the
	// cache TTL so the report is re-fetched as it goes stale.
	RefreshInterval time.Duration

	// DBPath is the sqlite file backing the saved-location store.
	DBPath string

	// GPSLat/GPSLon, when both set, configure a static device-position
	// source used by the GPS upgrade operation.
	GPSLat *float64
	GPSLon *float64
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:      getenvDefault("PORT", "8080"),
		WAQIToken: os.Getenv("WAQI_TOKEN"),
		DBPath:    getenvDefault("DB_PATH", "./data/envhealth.db"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	ttlStr := getenvDefault("CACHE_TTL", "10m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	refreshStr := getenvDefault("REFRESH_INTERVAL", ttlStr)
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.GPSLat = getenvFloat("GPS_LAT")
	cfg.GPSLon = getenvFloat("GPS_LON")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.CacheTTL < time.Minute {
		return fmt.Errorf("CACHE_TTL must be at least 1 minute")
	}
	if c.RefreshInterval < time.Minute {
		return fmt.Errorf("REFRESH_INTERVAL must be at least 1 minute")
	}
	if (c.GPSLat == nil) != (c.GPSLon == nil) {
		return fmt.Errorf("GPS_LAT and GPS_LON must be set together")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string) *float64 {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("ignoring invalid %s: %q", key, v)
		return nil
	}
	return &f
}
