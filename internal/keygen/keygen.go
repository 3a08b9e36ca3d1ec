// Package keygen produces the short random keys used as URL identifiers
// and user identifiers.
package keygen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// KeyBytes is the number of random bytes per key; hex encoding doubles it,
// so the resulting key is 6 characters long.
const KeyBytes = 3

// NewKey returns a short random key of 2*KeyBytes lowercase hex characters.
// No uniqueness check is performed; callers accept the collision risk.
func NewKey() (string, error) {
	buf := make([]byte, KeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
