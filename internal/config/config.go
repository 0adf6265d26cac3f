// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// AppConfig holds process-wide configuration for the job tracker.
type AppConfig struct {
	DatabaseURL    string
	DemoUserID     uuid.UUID // sentinel owner id of the shared read-only demo account
	RequestTimeout time.Duration
}

// NewAppConfig creates the application configuration from environment variables.
// It reads DATABASE_URL (required), DEMO_USER_ID (optional) and
// REQUEST_TIMEOUT (default: 15s).
func NewAppConfig() (*AppConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	cfg := &AppConfig{
		DatabaseURL:    databaseURL,
		RequestTimeout: 15 * time.Second,
	}

	if demoStr := os.Getenv("DEMO_USER_ID"); demoStr != "" {
		demoID, err := uuid.Parse(demoStr)
		if err != nil {
			return nil, fmt.Errorf("invalid DEMO_USER_ID: %v", err)
		}
		cfg.DemoUserID = demoID
	}

	if timeoutStr := os.Getenv("REQUEST_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %v", err)
		}
		cfg.RequestTimeout = timeout
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *AppConfig) normalize() error {
	if c.RequestTimeout < time.Second {
		return fmt.Errorf("REQUEST_TIMEOUT must be at least 1s, got: %s", c.RequestTimeout)
	}
	return nil
}
