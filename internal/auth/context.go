// ABOUTME: Context helpers for carrying the authenticated admin identity
// ABOUTME: Used by the HTTP middleware and handlers that need the caller

package auth

import "context"

type contextKey string

const identityKey contextKey = "auth_identity"

// WithIdentity returns a context carrying the authenticated identity
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the authenticated identity, or "" if the
// request was not authenticated.
func IdentityFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(identityKey).(string); ok {
		return v
	}
	return ""
}
