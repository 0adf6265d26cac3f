// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"time"
)

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret   string
	Lifetime time.Duration
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required) and JWT_LIFETIME (default: 24h).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	lifetimeStr := os.Getenv("JWT_LIFETIME")
	if lifetimeStr == "" {
		lifetimeStr = "24h" // default
	}

	lifetime, err := time.ParseDuration(lifetimeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_LIFETIME: %v", err)
	}

	config := &JWTConfig{
		Secret:   secret,
		Lifetime: lifetime,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.Lifetime < time.Minute {
		return fmt.Errorf("JWT_LIFETIME must be at least 1 minute, got: %s", c.Lifetime)
	}
	return nil
}
