package auth

import "errors"

// Gate failures form a small closed set that the HTTP boundary maps to
// status codes. Callers match with errors.Is; anything outside the set
// is an unexpected error and becomes a 500 at the boundary.
var (
	// ErrUnauthenticated means no valid credential was found. The
	// message carries no hint whether a token existed or was wrong.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the credential was valid but the role is
	// insufficient.
	ErrForbidden = errors.New("admin access required")

	// ErrNotConfigured means the administrator identity is missing
	// required environment configuration. Operational signal, maps
	// to 503.
	ErrNotConfigured = errors.New("admin credentials not configured")
)
