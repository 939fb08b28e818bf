// Package token models opaque bearer tokens. Only the sha256 hash of a token
// is ever stored; the plain value is shown to the client once at issue time.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/orris-inc/warden/internal/domain/principal"
)

var (
	// ErrSlotTaken is returned by Create when the live slot is already occupied
	ErrSlotTaken = errors.New("token slot already taken")
	// ErrHashCollision is returned by Create when the token hash already exists
	ErrHashCollision = errors.New("token hash collision")
)

// AuthToken is a persisted bearer token bound to exactly one principal
type AuthToken struct {
	id            uint
	principalKind principal.Kind
	principalID   uint
	slot          int
	tokenHash     string
	details       map[string]any
	createdAt     time.Time
	expiresAt     time.Time
}

// NewAuthToken creates a token occupying slot that expires validity after now
func NewAuthToken(kind principal.Kind, principalID uint, slot int, tokenHash string, details map[string]any, now time.Time, validity time.Duration) (*AuthToken, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid principal kind: %s", kind)
	}
	if principalID == 0 {
		return nil, fmt.Errorf("principal ID is required")
	}
	if slot < 0 {
		return nil, fmt.Errorf("slot cannot be negative")
	}
	if tokenHash == "" {
		return nil, fmt.Errorf("token hash is required")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("validity must be positive")
	}
	if details == nil {
		details = map[string]any{}
	}

	return &AuthToken{
		principalKind: kind,
		principalID:   principalID,
		slot:          slot,
		tokenHash:     tokenHash,
		details:       details,
		createdAt:     now,
		expiresAt:     now.Add(validity),
	}, nil
}

// ReconstructAuthToken reconstructs a token from persistence
func ReconstructAuthToken(id uint, kind principal.Kind, principalID uint, slot int, tokenHash string, details map[string]any, createdAt, expiresAt time.Time) (*AuthToken, error) {
	if id == 0 {
		return nil, fmt.Errorf("token ID cannot be zero")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid principal kind: %s", kind)
	}
	if details == nil {
		details = map[string]any{}
	}
	return &AuthToken{
		id:            id,
		principalKind: kind,
		principalID:   principalID,
		slot:          slot,
		tokenHash:     tokenHash,
		details:       details,
		createdAt:     createdAt,
		expiresAt:     expiresAt,
	}, nil
}

func (t *AuthToken) ID() uint                      { return t.id }
func (t *AuthToken) PrincipalKind() principal.Kind { return t.principalKind }
func (t *AuthToken) PrincipalID() uint             { return t.principalID }
func (t *AuthToken) Slot() int                     { return t.slot }
func (t *AuthToken) TokenHash() string             { return t.tokenHash }
func (t *AuthToken) Details() map[string]any       { return t.details }
func (t *AuthToken) CreatedAt() time.Time          { return t.createdAt }
func (t *AuthToken) ExpiresAt() time.Time          { return t.expiresAt }

// SetID sets the token ID (only for persistence layer use)
func (t *AuthToken) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("token ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("token ID cannot be zero")
	}
	t.id = id
	return nil
}

// IsExpired reports whether now is past the expiry. A token is still valid at
// the exact expiry instant.
func (t *AuthToken) IsExpired(now time.Time) bool {
	return now.After(t.expiresAt)
}
