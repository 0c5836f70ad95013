// Package checksum derives entity tags for note content.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of s.
func Sum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// ETag returns Sum(s) quoted for use in an HTTP ETag header.
func ETag(s string) string {
	return `"` + Sum(s) + `"`
}
