package shared

import (
	"context"

	"github.com/google/uuid"
)

type sessionContextKey struct{}

type identityContextKey struct{}

// Identity describes the authenticated caller as resolved by the auth
// middleware. RoleName is the raw role string; downstream authorization
// parses it into its own closed role set.
type Identity struct {
	ID       uuid.UUID
	Email    string
	RoleName string
}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// ContextWithIdentity stores the authenticated identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
