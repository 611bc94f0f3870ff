package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/admission-advisor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService(secret, issuer string, hours int) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: hours, Issuer: issuer})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newJWTService(testSecret, config.DefaultJWTIssuer, 24)

	token, err := service.GenerateToken("admin", "Super Admin")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.GetSubject())
	assert.Equal(t, "Super Admin", claims.GetRole())
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	principal, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.GetSubject())
}

func TestJWTService_Expired(t *testing.T) {
	service := newJWTService(testSecret, "", 1)
	issued := time.Now().Add(-3 * time.Hour)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken("admin", "Super Admin")
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_Rejects(t *testing.T) {
	service := newJWTService(testSecret, config.DefaultJWTIssuer, 1)

	other, err := newJWTService("another-secret-key-entirely", config.DefaultJWTIssuer, 1).GenerateToken("admin", "x")
	require.NoError(t, err)
	foreign, err := newJWTService(testSecret, "someone-else", 1).GenerateToken("admin", "x")
	require.NoError(t, err)
	anonymous, err := service.GenerateToken("", "x")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "admin"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"empty", "", "empty"},
		{"garbage", "not.a.token", "malformed"},
		{"wrong secret", other, "signature"},
		{"wrong issuer", foreign, "failed to parse"},
		{"alg none", unsigned, "signature"},
		{"no subject", anonymous, "no subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
