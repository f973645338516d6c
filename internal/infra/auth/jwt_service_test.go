package auth

import (
	"context"
	"testing"
	"time"

	"quill/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_key_very_long_for_testing"

func signHS256(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func newHMACConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Supabase.JWTSecret = testSecret

	return cfg
}

func TestJWTService_VerifyHMAC(t *testing.T) {
	svc := NewJWTService(newHMACConfig())
	require.True(t, svc.CanVerify())

	userID := uuid.New()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signHS256(t, testSecret, &accessClaims{
		Email: "ada@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestJWTService_VerifyRejects(t *testing.T) {
	svc := NewJWTService(newHMACConfig())
	userID := uuid.New().String()

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "expired",
			token: signHS256(t, testSecret, &accessClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}}),
		},
		{
			name: "wrong secret",
			token: signHS256(t, "another-secret", &accessClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}),
		},
		{
			name: "no expiry",
			token: signHS256(t, testSecret, &accessClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject: userID,
			}}),
		},
		{
			name:  "garbage",
			token: "clearly-not-a-jwt-token-format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(context.Background(), tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_WithoutKeysCannotVerify(t *testing.T) {
	svc := NewJWTService(&config.Config{})
	assert.False(t, svc.CanVerify())

	_, err := svc.Verify(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrTokenUnverifiable)
}
