package auth

import (
	"context" // Context for Redis operations
	"strconv" // userID <-> string key conversion
	"time"    // TTL durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Key prefixes and TTL for the session cache
const (
	tokenKeyPrefix = "jwt_token:"    // token -> userID
	userKeyPrefix  = "user_token:"   // userID -> current token
	SessionTTL     = 24 * time.Hour // Sliding TTL shared by both directions
)

// SessionCache maps tokens to users and users to their current token in Redis.
// Both directions share one sliding TTL; caching a new token for a user
// overwrites the previous pointer, so a new login implicitly supersedes the
// old session.
type SessionCache struct {
	rdb *redis.Client // Underlying Redis client
}

// NewSessionCache creates a SessionCache around an existing Redis client
func NewSessionCache(rdb *redis.Client) *SessionCache {
	return &SessionCache{rdb: rdb}
}

func tokenKey(token string) string {
	return tokenKeyPrefix + token
}

func userKey(userID uint) string {
	return userKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// CacheToken stores both directions for a freshly issued or re-validated token
func (s *SessionCache) CacheToken(ctx context.Context, token string, userID uint) error {
	// token -> userID
	if err := s.rdb.Set(ctx, tokenKey(token), strconv.FormatUint(uint64(userID), 10), SessionTTL).Err(); err != nil {
		return err
	}
	// userID -> token, overwriting any previous session pointer
	return s.rdb.Set(ctx, userKey(userID), token, SessionTTL).Err()
}

// IsTokenCached reports whether the token is currently known to the cache
func (s *SessionCache) IsTokenCached(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UserIDForToken resolves the owning user of a cached token; found is false on a miss
func (s *SessionCache) UserIDForToken(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return 0, false, nil // Token not cached
	} else if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

// UserToken returns the user's current token, if any
func (s *SessionCache) UserToken(ctx context.Context, userID uint) (string, bool, error) {
	val, err := s.rdb.Get(ctx, userKey(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// RemoveToken deletes the token entry and, when the owner can be resolved,
// the owner's current-token pointer as well (logout via one token clears both)
func (s *SessionCache) RemoveToken(ctx context.Context, token string) error {
	if userID, found, err := s.UserIDForToken(ctx, token); err == nil && found {
		if err := s.rdb.Del(ctx, userKey(userID)).Err(); err != nil {
			return err
		}
	}
	return s.rdb.Del(ctx, tokenKey(token)).Err()
}

// RemoveUserTokens force-logs-out a user: deletes the current-token pointer
// and its token entry without the caller presenting the token
func (s *SessionCache) RemoveUserTokens(ctx context.Context, userID uint) error {
	if token, found, err := s.UserToken(ctx, userID); err == nil && found {
		if err := s.rdb.Del(ctx, tokenKey(token)).Err(); err != nil {
			return err
		}
	}
	return s.rdb.Del(ctx, userKey(userID)).Err()
}

// Refresh resets the sliding TTL on both directions for a cached token.
// A miss is not an error; there is simply nothing to refresh.
func (s *SessionCache) Refresh(ctx context.Context, token string) error {
	userID, found, err := s.UserIDForToken(ctx, token)
	if err != nil || !found {
		return err
	}
	if err := s.rdb.Expire(ctx, tokenKey(token), SessionTTL).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, userKey(userID), SessionTTL).Err()
}
