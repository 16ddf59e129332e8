package repository

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// errIDTaken reports that a minted id already exists.
var errIDTaken = errors.New("id already taken")

const maxIDAttempts = 5

// newID mints a random id such as "proj-9f2c4e1ab07d33c8e6f1a2b4".
func newID(prefix string) (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(b)), nil
}

// withNewID runs insert with freshly minted ids until it stops reporting a
// primary-key collision.
func withNewID[T any](prefix string, insert func(id string) (T, error)) (T, error) {
	var zero T
	for i := 0; i < maxIDAttempts; i++ {
		id, err := newID(prefix)
		if err != nil {
			return zero, err
		}
		v, err := insert(id)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, errIDTaken) {
			continue
		}
		return zero, err
	}
	return zero, fmt.Errorf("failed to generate unique %s id", prefix)
}
