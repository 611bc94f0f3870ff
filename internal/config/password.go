package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// DefaultDashboardUser is the operator username when DASHBOARD_USER is unset.
const DefaultDashboardUser = "admin"

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig creates a new password configuration from environment variables.
// It reads BCRYPT_COST (default: 12) and optionally PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// HashPassword hashes a password using bcrypt (with optional pepper).
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash (with optional pepper).
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}

// DashboardConfig holds the single operator account allowed to view applications.
type DashboardConfig struct {
	Username     string
	PasswordHash string
}

// NewDashboardConfig reads DASHBOARD_USER (default: admin) and DASHBOARD_PASSWORD_HASH.
func NewDashboardConfig() *DashboardConfig {
	user := os.Getenv("DASHBOARD_USER")
	if user == "" {
		user = DefaultDashboardUser
	}
	return &DashboardConfig{Username: user, PasswordHash: os.Getenv("DASHBOARD_PASSWORD_HASH")}
}

// Enabled reports whether a password hash is configured. Without one every login fails.
func (c *DashboardConfig) Enabled() bool {
	return c != nil && c.PasswordHash != ""
}
