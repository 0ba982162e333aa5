package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator(t *testing.T) {
	tg := NewTokenGenerator("test-secret-key", time.Hour)

	assert.NotNil(t, tg)
	assert.Equal(t, "test-secret-key", tg.secret)
	assert.Equal(t, time.Hour, tg.Expiry())
}

func TestTokenGenerator_Generate(t *testing.T) {
	tg := NewTokenGenerator("b8a3c2267dc85f855dea9b46b452bf20", 0)

	t.Run("round trip", func(t *testing.T) {
		token, err := tg.Generate(123)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		userID, err := tg.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, 123, userID)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		first, err := tg.Generate(1)
		require.NoError(t, err)
		second, err := tg.Generate(1)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("no expiry claim when expiry is zero", func(t *testing.T) {
		token, err := tg.Generate(7)
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, _, err = jwt.NewParser().ParseUnverified(token, claims)
		require.NoError(t, err)
		_, hasExp := claims["exp"]
		assert.False(t, hasExp)
	})

	t.Run("expiry claim when configured", func(t *testing.T) {
		token, err := NewTokenGenerator("secret", time.Hour).Generate(7)
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, _, err = jwt.NewParser().ParseUnverified(token, claims)
		require.NoError(t, err)
		_, hasExp := claims["exp"]
		assert.True(t, hasExp)
	})
}

func TestTokenGenerator_Validate(t *testing.T) {
	secret := "test-secret"
	tg := NewTokenGenerator(secret, 0)

	sign := func(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name          string
		token         func(t *testing.T) string
		errorContains string
	}{
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				token, err := NewTokenGenerator("other-secret", 0).Generate(1)
				require.NoError(t, err)
				return token
			},
			errorContains: "failed to parse token",
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
					"user_id": 1,
					"type":    "user",
					"exp":     time.Now().Add(-time.Minute).Unix(),
				})
			},
			errorContains: "failed to parse token",
		},
		{
			name: "wrong type",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
					"user_id": 1,
					"type":    "refresh",
				})
			},
			errorContains: "not a user token",
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
					"type": "user",
				})
			},
			errorContains: "user_id not found",
		},
		{
			name: "unsigned token",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{
					"user_id": 1,
					"type":    "user",
				})
			},
			errorContains: "failed to parse token",
		},
		{
			name: "garbage",
			token: func(t *testing.T) string {
				return strings.Repeat("x", 40)
			},
			errorContains: "failed to parse token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := tg.Validate(tt.token(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Zero(t, userID)
		})
	}
}
