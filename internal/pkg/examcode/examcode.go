// Package examcode generates short, human-shareable exam codes.
package examcode

import (
	"crypto/rand"
	"fmt"
)

// alphabet avoids 0/O and 1/I so codes read over a classroom projector
// without ambiguity.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length is the number of characters in a generated code.
const Length = 8

// New returns a new uppercase exam code. Uniqueness is enforced by the
// database; the collision probability at this length is negligible.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
