// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// GeocodingConfig provides settings for the geocoding upstream client.
type GeocodingConfig interface {
	GetGeocodingServiceURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values. It is constructed once at
// process start and never mutated afterwards.
type Config struct {
	Env                 string
	Port                int
	GeocodingServiceURL string
	CORSAllowAll        bool
	CORSOrigins         []string
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return fmt.Sprintf(":%d", c.Port) }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// GeocodingConfig implementation
func (c *Config) GetGeocodingServiceURL() string { return c.GeocodingServiceURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("PORT must be an integer: %w", err)
	}

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := containsWildcard(corsOrigins)

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		Port:                port,
		GeocodingServiceURL: strings.TrimRight(getEnv("GEOCODING_SERVICE_URL", "http://localhost:5008"), "/"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
	}

	if cfg.GeocodingServiceURL == "" {
		return nil, fmt.Errorf("GEOCODING_SERVICE_URL cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
