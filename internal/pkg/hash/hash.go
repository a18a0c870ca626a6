// Package hash provides the credential digest used for stored passwords.
//
// The digest is a plain unsalted SHA-256 of the password, hex encoded.
// Identical inputs always produce identical digests, which makes stored
// hashes comparable by equality but also leaves them open to rainbow-table
// attacks. This matches the behaviour the rest of the system relies on for
// credential lookup; harden deliberately, not in passing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Password returns the hex-encoded SHA-256 digest of the plaintext password.
func Password(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
