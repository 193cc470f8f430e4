package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns a random 256-bit token in hex, used for email
// verification and password reset links.
func GenerateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
