package auth

import "context"

// Identity is the resolved (userID, username) pair established once per request
// after token verification.
type Identity struct {
	UserID   uint   // Authenticated user ID
	Username string // Authenticated username
}

type ctxKey string

const identityKey ctxKey = "auth.identity"

// WithIdentity stores the authenticated identity in the request context.
// The identity lives and dies with the request context, so concurrent requests
// are isolated and no cleanup step can be forgotten.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx fetches the authenticated identity from the context
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
