// Package auth implements token issuance and verification backed by a Redis
// session cache, plus the request-scoped identity carried on the context.
package auth

import (
	"context"

	"github.com/sirupsen/logrus" // Structured logging

	"github.com/wangruoshui6/meal-accounting-backend/internal/utils" // JWT helpers
)

// Authenticator issues and verifies session tokens. Verification is
// cache-first: a cache hit refreshes the sliding TTL and only re-checks the
// signature, so a continuously used session stays valid past the token's
// embedded expiry until it goes idle for a full cache TTL. A cache miss or a
// cache backend error falls back to the stateless signature+expiry check.
type Authenticator struct {
	secret   string        // JWT signing secret, injected via config
	sessions *SessionCache // Token/user session cache
}

// NewAuthenticator creates an Authenticator with the given signing secret and session cache
func NewAuthenticator(secret string, sessions *SessionCache) *Authenticator {
	return &Authenticator{secret: secret, sessions: sessions}
}

// Sessions exposes the underlying session cache (logout endpoints use it directly)
func (a *Authenticator) Sessions() *SessionCache {
	return a.sessions
}

// Issue signs a token for the user and registers it with the session cache.
// A cache write failure does not fail issuance; the stateless path still
// validates the token.
func (a *Authenticator) Issue(ctx context.Context, userID uint, username string) (string, error) {
	token, err := utils.GenerateJWT(userID, username, a.secret)
	if err != nil {
		return "", err
	}
	if err := a.sessions.CacheToken(ctx, token, userID); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Failed to cache issued token")
	}
	return token, nil
}

// Verify validates a bearer token and resolves the identity it carries.
// Cache hit: refresh TTL, signature-only check. Cache miss or cache error:
// full signature+expiry validation, then re-cache.
func (a *Authenticator) Verify(ctx context.Context, token string) (Identity, error) {
	cached, err := a.sessions.IsTokenCached(ctx, token)
	if err != nil {
		// Treat a cache backend failure as a miss; the stateless check below
		// is a deterministic fallback.
		logrus.WithField("error", err.Error()).Warn("Session cache unavailable, falling back to stateless check")
		cached = false
	}
	if cached {
		claims, err := utils.ParseJWTUnverifiedExpiry(token, a.secret)
		if err != nil {
			return Identity{}, err // Signature mismatch is fatal even on a cache hit
		}
		if err := a.sessions.Refresh(ctx, token); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to refresh session TTL")
		}
		return Identity{UserID: claims.UserID, Username: claims.Username}, nil
	}
	// Stateless path: signature and embedded expiry must both hold
	claims, err := utils.ParseJWT(token, a.secret)
	if err != nil {
		return Identity{}, err
	}
	if err := a.sessions.CacheToken(ctx, token, claims.UserID); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to re-cache verified token")
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// ValidateForUser verifies the token and additionally requires the embedded
// username to match
func (a *Authenticator) ValidateForUser(token, expectedUsername string) bool {
	return utils.ValidateJWTForUser(token, expectedUsername, a.secret)
}

// Logout removes the token from the session cache in both directions
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	return a.sessions.RemoveToken(ctx, token)
}

// ForceLogout removes the user's current session without the token being presented
func (a *Authenticator) ForceLogout(ctx context.Context, userID uint) error {
	return a.sessions.RemoveUserTokens(ctx, userID)
}
