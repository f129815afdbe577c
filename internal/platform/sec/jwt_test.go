// Copyright (c) 2026 VideoTube. All rights reserved.

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	service, err := NewTokenService("access-secret", "refresh-secret", "verify-secret", "videotube.test")
	require.NoError(t, err)
	return service
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "jane@example.com", "jane", "Jane Doe", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "Jane Doe", claims.FullName)
	assert.Equal(t, "videotube.test", claims.Issuer)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateRefreshToken("user-2", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.UserID)
}

func TestTokenService_VerifyTokenRoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateVerifyToken("user-3", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyVerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-3", claims.UserID)
}

func TestTokenService_RefreshTokensAreUniquePerMint(t *testing.T) {
	service := newTestTokenService(t)

	// Timestamps have second precision, so uniqueness must come from the
	// jti even when both tokens are minted within the same second.
	first, err := service.GenerateRefreshToken("user-2", time.Hour)
	require.NoError(t, err)
	second, err := service.GenerateRefreshToken("user-2", time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	service := newTestTokenService(t)

	refreshToken, err := service.GenerateRefreshToken("user-4", time.Hour)
	require.NoError(t, err)

	// A refresh token must never pass access-token verification.
	_, err = service.VerifyAccessToken(refreshToken)
	assert.Error(t, err)

	accessToken, err := service.GenerateAccessToken("user-4", "a@b.c", "u", "U", time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-5", "a@b.c", "u", "U", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_EmptySecretRejected(t *testing.T) {
	_, err := NewTokenService("", "r", "v", "iss")
	assert.Error(t, err)
}

func TestGenerateOTP_SixDigits(t *testing.T) {
	for range 20 {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, character := range otp {
			assert.GreaterOrEqual(t, character, '0')
			assert.LessOrEqual(t, character, '9')
		}
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPasswordHash("s3cret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}
