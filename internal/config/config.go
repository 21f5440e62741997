// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"accessible-route-planner/internal/database"
)

// Config holds all application configuration.
type Config struct {
	Port            string
	Env             string
	DBPath          string
	OverpassURL     string
	SearchRadius    float64
	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbPath := getEnv("DB_PATH", "")
	if dbPath == "" {
		defaultPath, err := database.GetSQLiteDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve default database path: %w", err)
		}
		dbPath = defaultPath
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DBPath:          dbPath,
		OverpassURL:     getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		SearchRadius:    getFloatEnv("SEARCH_RADIUS_METERS", 250),
		HTTPTimeout:     getDurationEnv("HTTP_TIMEOUT_SECONDS", 30) * time.Second,
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT_SECONDS", 10) * time.Second,
	}, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}
