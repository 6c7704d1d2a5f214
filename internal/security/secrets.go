package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// ConstantTimeEquals compares two byte sequences in time independent
// of where the first mismatch occurs. Differing lengths return false
// immediately; length is public information and not part of the secret.
func ConstantTimeEquals(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// HashClientIP derives a short stable fingerprint of a client address
// so raw addresses never reach logs or storage. 16 hex chars is enough
// to keep rate-limit buckets distinct without being reversible in bulk.
func HashClientIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])[:16]
}
