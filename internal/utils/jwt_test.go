package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangruoshui6/meal-accounting-backend/internal/errs"
	"github.com/wangruoshui6/meal-accounting-backend/internal/utils"
)

const testSecret = "test-secret"

// expiredToken signs a token whose embedded expiry is already in the past
func expiredToken(t *testing.T, userID uint, username string) string {
	t.Helper()
	claims := utils.Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := utils.GenerateJWT(42, "小明", testSecret)
	require.NoError(t, err)

	claims, err := utils.ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "小明", claims.Username)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT(1, "小明", testSecret)
	require.NoError(t, err)

	_, err = utils.ParseJWT(token, "other-secret")
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)
}

func TestParseJWTMalformed(t *testing.T) {
	_, err := utils.ParseJWT("not.a.token", testSecret)
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)

	_, err = utils.ParseJWT("", testSecret)
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)
}

func TestParseJWTExpired(t *testing.T) {
	token := expiredToken(t, 7, "小红")

	_, err := utils.ParseJWT(token, testSecret)
	assert.ErrorIs(t, err, errs.ErrTokenExpired)
}

func TestParseJWTUnverifiedExpiry(t *testing.T) {
	token := expiredToken(t, 7, "小红")

	// Signature-only parse still yields the claims of an expired token
	claims, err := utils.ParseJWTUnverifiedExpiry(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "小红", claims.Username)

	// But a bad signature is still rejected
	_, err = utils.ParseJWTUnverifiedExpiry(token, "other-secret")
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)
}

func TestValidateJWTForUser(t *testing.T) {
	token, err := utils.GenerateJWT(9, "小李", testSecret)
	require.NoError(t, err)

	assert.True(t, utils.ValidateJWTForUser(token, "小李", testSecret))
	assert.False(t, utils.ValidateJWTForUser(token, "别人", testSecret))
	assert.False(t, utils.ValidateJWTForUser(expiredToken(t, 9, "小李"), "小李", testSecret))
}
