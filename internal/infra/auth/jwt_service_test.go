package auth

import (
	"testing"
	"time"

	"jukebox/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	userID := uuid.New()
	sessionID := uuid.New()

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, sessionID, accessClaims.SessionID)
	assert.Equal(t, "access", accessClaims.Type)

	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, sessionID, refreshClaims.SessionID)
	assert.Equal(t, "refresh", refreshClaims.Type)
}

func TestJWTService_TokenTypesAreNotInterchangeable(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(uuid.New(), uuid.New())
	require.NoError(t, err)

	// Different secrets: a refresh token must never validate as access and
	// vice versa.
	_, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	_, err = jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := newTestJWTConfig()
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  -time.Minute,
		RefreshTokenTTL: time.Hour,
	}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	accessToken, _, err := jwtService.GenerateTokens(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(accessToken)
	assert.Error(t, err)
}

func TestJWTService_MissingSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_HashTokenIsStable(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	hash := jwtService.HashToken("some-token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, jwtService.HashToken("some-token"))
	assert.NotEqual(t, hash, jwtService.HashToken("other-token"))
}
