// Package principal registers and administers operator and customer accounts.
package principal

import (
	"context"

	"github.com/orris-inc/warden/internal/domain/principal"
)

// EmailService delivers account mail
type EmailService interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

// SecretGenerator produces random secrets and the hash stored for them
type SecretGenerator interface {
	Generate() (plain string, hash string, err error)
	Hash(plain string) string
}

// RoleAssigner assigns platform roles with the resolver's guards
type RoleAssigner interface {
	AssignRole(ctx context.Context, actor, target principal.Principal, roleUID string) error
}

// SessionRevoker drops every token of a principal
type SessionRevoker interface {
	RevokeAll(ctx context.Context, p principal.Principal) error
}
