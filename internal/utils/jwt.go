package utils

import (
	"errors" // Sentinel matching for typed failures
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library

	"github.com/wangruoshui6/meal-accounting-backend/internal/errs" // Error taxonomy
)

// TokenTTL is the embedded lifetime of a signed token
const TokenTTL = 24 * time.Hour

// JWT Claims
type Claims struct {
	UserID               uint   `json:"userId"`   // Custom claim for user ID
	Username             string `json:"username"` // Custom claim for username
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a signed token carrying the user ID and username
func GenerateJWT(userID uint, username, secret string) (string, error) {
	claims := Claims{
		UserID:   userID,   // Custom claim for user ID
		Username: username, // Custom claim for username
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and fully validates a token string (signature and expiry).
// Returns errs.ErrTokenExpired for well-formed tokens past their expiry and
// errs.ErrTokenInvalid for everything else; it never panics on malformed input.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.ErrTokenExpired // Past embedded expiry
		}
		return nil, errs.ErrTokenInvalid // Bad signature or malformed token
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	return nil, errs.ErrTokenInvalid
}

// ParseJWTUnverifiedExpiry checks the signature but skips claim validation,
// so an expired token still yields its claims. Used on the cache-hit path,
// where the session cache TTL is the validity authority.
func ParseJWTUnverifiedExpiry(tokenStr, secret string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Signature is still enforced
	})
	if err != nil {
		return nil, errs.ErrTokenInvalid
	}
	if claims, ok := token.Claims.(*Claims); ok {
		return claims, nil
	}
	return nil, errs.ErrTokenInvalid
}

// ValidateJWTForUser fully validates the token and additionally requires the
// embedded username to match the expected one
func ValidateJWTForUser(tokenStr, expectedUsername, secret string) bool {
	claims, err := ParseJWT(tokenStr, secret)
	if err != nil {
		return false
	}
	return claims.Username == expectedUsername
}
