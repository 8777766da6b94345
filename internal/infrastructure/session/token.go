// Package session provides the in-process session registry and the token
// generator shared by all registry backends.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenBytes = 16

// NewToken returns a fresh opaque session token: 128 bits from the
// cryptographic random source, hex-encoded. Entropy is the collision
// defense; there is no uniqueness retry loop.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
