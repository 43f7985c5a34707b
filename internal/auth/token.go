package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// newToken returns a cryptographically secure opaque session token as a
// 96-character hex string. The raw value goes to the client; only its hash
// is ever stored.
func newToken() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the SHA-256 hex digest of a raw session token. Storing
// the hash instead of the token keeps stolen database rows unusable.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
