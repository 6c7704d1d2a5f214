package credentials

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/iambatul/sishairven/internal/security"

	"github.com/google/uuid"
)

// Records have the shape "salt:hexhash" where hash = SHA-256(password + salt).
// The record is opaque and one-way; there is no decode path.

// HashPassword derives a verifiable record for a plaintext password.
// The salt is a fresh random 128-bit value, never reused across calls.
func HashPassword(password string) string {
	salt := uuid.NewString()
	return salt + ":" + digest(password, salt)
}

// VerifyPassword checks a plaintext candidate against a stored record.
// Tampered or malformed records verify false, never panic.
func VerifyPassword(password, record string) bool {
	salt, hash, ok := strings.Cut(record, ":")
	if !ok || salt == "" || hash == "" {
		return false
	}

	// Compare raw digest bytes so the comparison covers exactly what
	// was hashed; a record that is not valid hex fails closed.
	want, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}

	sum := sha256.Sum256([]byte(password + salt))
	return security.ConstantTimeEquals(sum[:], want)
}

func digest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
