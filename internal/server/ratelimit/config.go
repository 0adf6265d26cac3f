package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// Config holds rate limiting configuration for the auth endpoints.
type Config struct {
	Enabled         bool
	Limit           int           // maximum requests per window
	Window          time.Duration // time window
	CleanupInterval time.Duration
}

// LoadConfig loads rate limiting configuration from environment variables.
// Defaults match the public deployment: 10 requests per 15 minutes.
func LoadConfig() *Config {
	return &Config{
		Enabled:         getEnvBool("AUTH_RATE_LIMIT_ENABLED", true),
		Limit:           getEnvInt("AUTH_RATE_LIMIT", 10),
		Window:          getEnvDuration("AUTH_RATE_WINDOW", 15*time.Minute),
		CleanupInterval: getEnvDuration("AUTH_RATE_CLEANUP_INTERVAL", 5*time.Minute),
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
