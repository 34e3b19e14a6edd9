// Package http adapts authorization decisions to the HTTP layer: identity
// context plumbing and the route guard middleware.
package http

import (
	"context"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// identityKey is a context key type for storing the request identity.
type identityKey struct{}

// WithIdentity stores the request identity in the context. The session
// middleware calls this exactly once per request, with either the
// authenticated identity or the anonymous one.
func WithIdentity(ctx context.Context, identity authzDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the request identity from the context.
// Returns (identity, true) when set, or (zero, false) otherwise.
func GetIdentity(ctx context.Context) (authzDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(authzDomain.Identity)
	return identity, ok
}

// IdentityOrAnonymous retrieves the request identity, falling back to the
// anonymous identity when the session middleware did not run. Guards and
// handlers always operate on a real identity value, never on nil.
func IdentityOrAnonymous(ctx context.Context) authzDomain.Identity {
	if identity, ok := GetIdentity(ctx); ok {
		return identity
	}
	return authzDomain.Anonymous()
}
