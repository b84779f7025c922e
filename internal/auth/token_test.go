package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listindia/listindia-api/internal/auth"
	"github.com/listindia/listindia-api/internal/config"
	"github.com/listindia/listindia-api/internal/models"
)

func testConfig(ttl time.Duration) *config.Config {
	return &config.Config{
		JWTSecret: "test-signing-secret",
		TokenTTL:  ttl,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Email: "owner@example.com",
		Role:  models.RoleBusiness,
	}
}

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	svc := auth.NewTokenService(testConfig(time.Hour))

	token, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := svc.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), ident.UserID)
	assert.Equal(t, "owner@example.com", ident.Email)
	assert.Equal(t, models.RoleBusiness, ident.Role)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := auth.NewTokenService(testConfig(-time.Minute))

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.Verify(token)

	// Expiry must surface as its own kind, never as a generic failure.
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
	assert.NotErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_NotYetValidToken(t *testing.T) {
	cfg := testConfig(time.Hour)
	svc := auth.NewTokenService(cfg)

	claims := auth.Claims{
		Email: "owner@example.com",
		Role:  models.RoleBusiness,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    config.TokenIssuer,
			Audience:  jwt.ClaimStrings{config.TokenAudience},
			NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenNotYetValid)
}

func TestTokenService_InvalidTokens(t *testing.T) {
	svc := auth.NewTokenService(testConfig(time.Hour))

	valid, err := svc.Issue(testUser())
	require.NoError(t, err)

	other := auth.NewTokenService(&config.Config{
		JWTSecret: "a-different-secret",
		TokenTTL:  time.Hour,
	})
	wrongKey, err := other.Issue(testUser())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"tampered_payload", valid[:len(valid)-4] + "AAAA"},
		{"wrong_signing_key", wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestTokenService_RejectsForeignIssuer(t *testing.T) {
	cfg := testConfig(time.Hour)
	svc := auth.NewTokenService(cfg)

	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{config.TokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
