package session

import (
	"context"
	"time"

	"github.com/iambatul/sishairven/internal/auth"
)

// Session binds an opaque token to an authenticated identity and an
// absolute expiry. Tokens are the map key, not part of the value.
type Session struct {
	Identity  auth.Identity
	ExpiresAt time.Time
}

// Store defines how sessions are stored and retrieved. The in-memory
// implementation is the only one this deployment needs; the interface
// keeps a networked store substitutable without changing callers.
type Store interface {
	// Create stores a new session for the identity and returns its token.
	Create(ctx context.Context, identity auth.Identity) (string, error)
	// Validate resolves a token to its identity. Empty, unknown, and
	// expired tokens all report false; expiry is never renewed here.
	Validate(ctx context.Context, token string) (auth.Identity, bool)
	// Revoke removes the session and reports whether it existed.
	Revoke(ctx context.Context, token string) bool
}
