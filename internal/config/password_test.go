package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "pepper")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "pepper", cfg.Pepper)

	for _, bad := range []string{"9", "15", "twelve"} {
		t.Setenv("BCRYPT_COST", bad)
		_, err := NewPasswordConfig()
		assert.Error(t, err, bad)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: bcrypt.MinCost}

	hash, err := cfg.HashPassword("shaji")
	require.NoError(t, err)
	assert.NotEqual(t, "shaji", hash)

	assert.True(t, cfg.VerifyPassword("shaji", hash))
	assert.False(t, cfg.VerifyPassword("Shaji", hash))
	assert.False(t, cfg.VerifyPassword("shaji", "not-a-hash"))
}

func TestVerifyPassword_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: "s3cret"}
	plain := &PasswordConfig{BcryptCost: bcrypt.MinCost}

	hash, err := peppered.HashPassword("pw")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("pw", hash))
	assert.False(t, plain.VerifyPassword("pw", hash))
}

func TestNewDashboardConfig(t *testing.T) {
	t.Setenv("DASHBOARD_USER", "")
	t.Setenv("DASHBOARD_PASSWORD_HASH", "")

	cfg := NewDashboardConfig()
	assert.Equal(t, DefaultDashboardUser, cfg.Username)
	assert.False(t, cfg.Enabled())

	t.Setenv("DASHBOARD_USER", "registrar")
	t.Setenv("DASHBOARD_PASSWORD_HASH", "$2a$12$abc")
	cfg = NewDashboardConfig()
	assert.Equal(t, "registrar", cfg.Username)
	assert.True(t, cfg.Enabled())

	var missing *DashboardConfig
	assert.False(t, missing.Enabled())
}
