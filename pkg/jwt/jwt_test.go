package jwt

import (
	"testing"
	"time"

	"skinconsult-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := testService()
	userID := uuid.New()

	token, tokenID, err := s.GenerateAccessToken(userID, "amira@example.com", 3)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "amira@example.com", claims.Email)
	assert.Equal(t, 3, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenType(t *testing.T) {
	s := testService()

	token, _, err := s.GenerateRefreshToken(uuid.New(), "amira@example.com", 3)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	s := testService()
	token, _, err := s.GenerateAccessToken(uuid.New(), "amira@example.com", 3)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "different", AccessExpiry: time.Minute, RefreshExpiry: time.Minute})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	s := testService()
	_, err := s.ValidateToken("not.a.token")
	assert.Error(t, err)
}
