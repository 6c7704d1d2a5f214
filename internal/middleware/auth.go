package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/iambatul/sishairven/internal/auth"
	"github.com/iambatul/sishairven/internal/ratelimit"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the identity. Exposed for
// handler tests.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

type AuthMiddleware struct {
	Gate *auth.Gate
}

func NewAuthMiddleware(gate *auth.Gate) *AuthMiddleware {
	return &AuthMiddleware{Gate: gate}
}

// RequireAdmin resolves the caller's identity through the gate and
// enforces the admin role before the request reaches the handler.
// Responses carry the failure category and nothing else.
func (a *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.Gate.RequireAdmin(r)
		if err != nil {
			status, msg := StatusForError(err)
			http.Error(w, msg, status)
			return
		}

		ctx := WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StatusForError maps the gate's closed error set to HTTP statuses.
// Anything outside the set is an unexpected failure and becomes a 500.
func StatusForError(err error) (int, string) {
	var limitErr *ratelimit.LimitError
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "admin access required"
	case errors.Is(err, auth.ErrNotConfigured):
		return http.StatusServiceUnavailable, "admin credentials not configured"
	case errors.As(err, &limitErr):
		return http.StatusTooManyRequests, "too many requests"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
