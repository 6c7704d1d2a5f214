package auth

// Role is the sole authorization axis the gate consumes.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Identity represents the authenticated principal resolved from a
// request. It contains facts only, no decisions, and is immutable
// once constructed.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// The two principals this deployment knows about. There is no user
// directory; the site has a single administrator plus an API identity
// synthesized for server-to-server calls.

func AdminIdentity(email string) Identity {
	return Identity{
		ID:    "admin-1",
		Email: email,
		Role:  RoleAdmin,
		Name:  "Administrator",
	}
}

func APIIdentity() Identity {
	return Identity{
		ID:    "api",
		Email: "api@sishairven.com",
		Role:  RoleAdmin,
		Name:  "API User",
	}
}
