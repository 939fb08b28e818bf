package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/orris-inc/warden/internal/domain/principal"
)

// bcrypt ignores input past 72 bytes; longer passwords are refused instead
const maxPasswordBytes = 72

type BcryptPasswordHasher struct {
	cost int
}

var _ principal.PasswordHasher = (*BcryptPasswordHasher)(nil)

// NewBcryptPasswordHasher falls back to bcrypt.DefaultCost for an out of range cost
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("password exceeds %d bytes", maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify hides the mismatch cause so a malformed hash and a wrong password
// look the same to the caller
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if hash == "" {
		return fmt.Errorf("password verification failed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// NeedsRehash reports whether hash was produced with a different cost
func (h *BcryptPasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != h.cost
}
