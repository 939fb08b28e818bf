package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/warden/internal/shared/constants"
)

// AuthTokenModel stores the hash of an issued bearer token. The
// (principal_kind, principal_id, slot) index caps live tokens per principal.
type AuthTokenModel struct {
	ID            uint              `gorm:"primarykey"`
	PrincipalKind string            `gorm:"not null;size:20;uniqueIndex:idx_auth_tokens_slot,priority:1;index:idx_auth_tokens_principal,priority:1"`
	PrincipalID   uint              `gorm:"not null;uniqueIndex:idx_auth_tokens_slot,priority:2;index:idx_auth_tokens_principal,priority:2"`
	Slot          int               `gorm:"not null;uniqueIndex:idx_auth_tokens_slot,priority:3"`
	TokenHash     string            `gorm:"not null;size:64;uniqueIndex:idx_auth_tokens_token_hash"`
	Details       datatypes.JSONMap `gorm:"type:json"`
	ExpiresAt     time.Time         `gorm:"not null;index:idx_auth_tokens_expires_at"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (AuthTokenModel) TableName() string {
	return constants.TableAuthTokens
}
