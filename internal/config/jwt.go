package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultJWTIssuer is set as the iss claim of dashboard tokens.
const DefaultJWTIssuer = "admission-advisor"

// JWTConfig holds configuration for dashboard token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24"
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
		Issuer:          DefaultJWTIssuer,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *JWTConfig) normalize() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
