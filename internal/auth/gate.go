package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/iambatul/sishairven/internal/auth/credentials"
	"github.com/iambatul/sishairven/internal/logger"
)

const sessionCookieName = "session"

// SessionStore is the slice of the session store the gate consumes.
// internal/session provides the in-memory implementation.
type SessionStore interface {
	Create(ctx context.Context, identity Identity) (string, error)
	Validate(ctx context.Context, token string) (Identity, bool)
	Revoke(ctx context.Context, token string) bool
}

// Gate resolves the caller's identity from a request. It composes the
// token authenticator with the session store; all admin endpoints go
// through it.
type Gate struct {
	tokens   *Authenticator
	sessions SessionStore

	adminEmail        string
	adminPasswordHash string
}

func NewGate(
	tokens *Authenticator,
	sessions SessionStore,
	adminEmail string,
	adminPasswordHash string,
) *Gate {
	return &Gate{
		tokens:            tokens,
		sessions:          sessions,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
	}
}

// ExtractBearerToken pulls the credential out of the Authorization
// header. The scheme match is case-insensitive; a missing or foreign
// scheme yields "".
func ExtractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth resolves the caller's identity, trying in order:
//
//  1. bearer token matching the admin API token (never touches the
//     session store)
//  2. bearer token as a session token
//  3. session cookie
//
// Failure is ErrUnauthenticated with no hint which path was attempted.
func (g *Gate) RequireAuth(r *http.Request) (Identity, error) {
	if bearer := ExtractBearerToken(r); bearer != "" {
		if identity, ok := g.tokens.LoginWithAPIToken(bearer); ok {
			return identity, nil
		}

		if identity, ok := g.sessions.Validate(r.Context(), bearer); ok {
			return identity, nil
		}
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if identity, ok := g.sessions.Validate(r.Context(), cookie.Value); ok {
			return identity, nil
		}
	}

	return Identity{}, ErrUnauthenticated
}

// RequireAdmin resolves the identity and enforces the admin role.
func (g *Gate) RequireAdmin(r *http.Request) (Identity, error) {
	identity, err := g.RequireAuth(r)
	if err != nil {
		return Identity{}, err
	}

	if identity.Role != RoleAdmin {
		return Identity{}, ErrForbidden
	}

	return identity, nil
}

// LoginAdmin verifies the configured administrator credentials and,
// on success, opens a session for the fixed administrator identity.
// This is a single hard-coded principal, not a user directory.
func (g *Gate) LoginAdmin(ctx context.Context, email, password string) (string, Identity, error) {
	if g.adminEmail == "" || g.adminPasswordHash == "" {
		logger.Error("admin credentials not configured", nil)
		return "", Identity{}, ErrNotConfigured
	}

	if email != g.adminEmail {
		return "", Identity{}, ErrUnauthenticated
	}
	if !credentials.VerifyPassword(password, g.adminPasswordHash) {
		return "", Identity{}, ErrUnauthenticated
	}

	identity := AdminIdentity(email)
	token, err := g.sessions.Create(ctx, identity)
	if err != nil {
		return "", Identity{}, err
	}

	return token, identity, nil
}

// RevokeSession ends a session and reports whether it existed.
func (g *Gate) RevokeSession(ctx context.Context, token string) bool {
	return g.sessions.Revoke(ctx, token)
}
