package token

import (
	"context"
	"time"

	"github.com/orris-inc/warden/internal/domain/principal"
)

// Repository defines persistence operations for auth tokens
type Repository interface {
	// Create inserts the token. It returns ErrSlotTaken or ErrHashCollision
	// when the matching unique index rejects the row.
	Create(ctx context.Context, t *AuthToken) error

	// GetByHash returns nil, nil when no token has the hash
	GetByHash(ctx context.Context, tokenHash string) (*AuthToken, error)

	// CountLive counts the principal's tokens with expires_at after now
	CountLive(ctx context.Context, kind principal.Kind, principalID uint, now time.Time) (int64, error)

	// UsedSlots lists the slots held by the principal's remaining tokens
	UsedSlots(ctx context.Context, kind principal.Kind, principalID uint) ([]int, error)

	// DeleteExpired removes the principal's tokens with expires_at at or before now
	DeleteExpired(ctx context.Context, kind principal.Kind, principalID uint, now time.Time) (int64, error)

	// Delete removes one token. Deleting a missing token is not an error.
	Delete(ctx context.Context, id uint) error

	// DeleteByPrincipal removes every token of the principal
	DeleteByPrincipal(ctx context.Context, kind principal.Kind, principalID uint) (int64, error)
}
