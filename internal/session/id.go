package session

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateToken generates an opaque session token: 128 bits of
// randomness rendered as 32 hex chars, no embedded structure.
func GenerateToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
