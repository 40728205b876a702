package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"identity-service/app/port"
)

// BcryptHasher hashes one-time codes with bcrypt so plaintext codes are
// never persisted. Implements port.CodeHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the default bcrypt cost.
func NewBcryptHasher() port.CodeHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt digest of the plaintext code.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether the plaintext code matches the digest.
func (h *BcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
