package auth

import "github.com/iambatul/sishairven/internal/security"

// Authenticator validates the fixed administrator API token used for
// server-to-server access. The token is read-only process
// configuration, safe to share without synchronization.
type Authenticator struct {
	adminToken string
}

func NewAuthenticator(adminToken string) *Authenticator {
	return &Authenticator{adminToken: adminToken}
}

// ValidateAdminToken reports whether the candidate matches the
// configured token. Unset token or empty candidate never match.
func (a *Authenticator) ValidateAdminToken(candidate string) bool {
	if a.adminToken == "" || candidate == "" {
		return false
	}
	return security.ConstantTimeEquals([]byte(candidate), []byte(a.adminToken))
}

// LoginWithAPIToken resolves a valid API token directly to the admin
// identity, bypassing the session store entirely.
func (a *Authenticator) LoginWithAPIToken(token string) (Identity, bool) {
	if !a.ValidateAdminToken(token) {
		return Identity{}, false
	}
	return APIIdentity(), true
}
