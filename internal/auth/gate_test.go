package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iambatul/sishairven/internal/auth"
	"github.com/iambatul/sishairven/internal/auth/credentials"
	"github.com/iambatul/sishairven/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "owner@example.com"
	adminPassword = "hunter2hunter2"
	apiToken      = "test-api-token-value"
)

func newGate(t *testing.T) (*auth.Gate, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	gate := auth.NewGate(
		auth.NewAuthenticator(apiToken),
		store,
		adminEmail,
		credentials.HashPassword(adminPassword),
	)
	return gate, store
}

func bearerRequest(token string) *http.Request {
	r := httptest.NewRequest("GET", "/api/admin/stats", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestExtractBearerToken(t *testing.T) {
	r := bearerRequest("abc123")
	assert.Equal(t, "abc123", auth.ExtractBearerToken(r))

	r.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", auth.ExtractBearerToken(r), "scheme is case-insensitive")

	r.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, auth.ExtractBearerToken(r))

	r.Header.Del("Authorization")
	assert.Empty(t, auth.ExtractBearerToken(r))
}

func TestRequireAuthWithAPIToken(t *testing.T) {
	gate, store := newGate(t)

	identity, err := gate.RequireAuth(bearerRequest(apiToken))
	require.NoError(t, err)
	assert.Equal(t, "api", identity.ID)
	assert.Equal(t, auth.RoleAdmin, identity.Role)
	assert.Equal(t, 0, store.Len(), "API token path never touches the session store")
}

func TestRequireAuthWithSessionBearer(t *testing.T) {
	gate, _ := newGate(t)

	token, want, err := gate.LoginAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	got, err := gate.RequireAuth(bearerRequest(token))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRequireAuthWithSessionCookie(t *testing.T) {
	gate, _ := newGate(t)

	token, want, err := gate.LoginAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/admin/me", nil)
	r.AddCookie(&http.Cookie{Name: "session", Value: token})

	got, err := gate.RequireAuth(r)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRequireAuthRejectsGarbage(t *testing.T) {
	gate, _ := newGate(t)

	_, err := gate.RequireAuth(bearerRequest("not-a-real-token"))
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = gate.RequireAuth(httptest.NewRequest("GET", "/", nil))
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestRequireAdmin(t *testing.T) {
	gate, _ := newGate(t)

	identity, err := gate.RequireAdmin(bearerRequest(apiToken))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, identity.Role)

	_, err = gate.RequireAdmin(bearerRequest("wrong"))
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestRequireAdminRejectsNonAdminRole(t *testing.T) {
	store := session.NewMemoryStore()
	gate := auth.NewGate(auth.NewAuthenticator(""), store, adminEmail, "")

	token, err := store.Create(context.Background(), auth.Identity{
		ID:   "viewer-1",
		Role: auth.RoleViewer,
	})
	require.NoError(t, err)

	_, err = gate.RequireAdmin(bearerRequest(token))
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestLoginAdmin(t *testing.T) {
	gate, _ := newGate(t)
	ctx := context.Background()

	token, identity, err := gate.LoginAdmin(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin-1", identity.ID)
	assert.Equal(t, adminEmail, identity.Email)

	_, _, err = gate.LoginAdmin(ctx, "other@example.com", adminPassword)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, _, err = gate.LoginAdmin(ctx, adminEmail, "wrong password")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestLoginAdminNotConfigured(t *testing.T) {
	gate := auth.NewGate(auth.NewAuthenticator(""), session.NewMemoryStore(), "", "")

	_, _, err := gate.LoginAdmin(context.Background(), adminEmail, adminPassword)
	assert.ErrorIs(t, err, auth.ErrNotConfigured)
}

func TestRevokeSession(t *testing.T) {
	gate, _ := newGate(t)
	ctx := context.Background()

	token, _, err := gate.LoginAdmin(ctx, adminEmail, adminPassword)
	require.NoError(t, err)

	assert.True(t, gate.RevokeSession(ctx, token))

	_, err = gate.RequireAuth(bearerRequest(token))
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestValidateAdminToken(t *testing.T) {
	a := auth.NewAuthenticator(apiToken)

	assert.True(t, a.ValidateAdminToken(apiToken))
	assert.False(t, a.ValidateAdminToken("wrong"))
	assert.False(t, a.ValidateAdminToken(""))

	unset := auth.NewAuthenticator("")
	assert.False(t, unset.ValidateAdminToken(""), "unset token never matches")
	assert.False(t, unset.ValidateAdminToken("anything"))
}
