package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
)

var secret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("u1", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	token, err := GenerateToken("u1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, secret)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("u1", secret, time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("other-secret"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not.a.jwt", secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestURLToken_RoundTrip(t *testing.T) {
	token, err := GenerateURLToken("invoice-scans/u1/a.jpg", secret, time.Hour)
	require.NoError(t, err)

	path, err := GetPathFromURLToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "invoice-scans/u1/a.jpg", path)
}

func TestURLToken_Expired(t *testing.T) {
	token, err := GenerateURLToken("invoice-scans/u1/a.jpg", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetPathFromURLToken(token, secret)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestURLToken_AccessTokenIsNotAURLToken(t *testing.T) {
	// an API access token has no path claim and must be rejected
	token, err := GenerateToken("u1", secret, time.Minute)
	require.NoError(t, err)

	_, err = GetPathFromURLToken(token, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
