package handlers

import (
	"context"

	"github.com/orris-inc/warden/internal/application/auth"
	principalapp "github.com/orris-inc/warden/internal/application/principal"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd auth.LoginCommand) (*auth.LoginResult, error)
}

type registerUseCase interface {
	Execute(ctx context.Context, cmd principalapp.RegisterCommand) (principal.Principal, error)
}

type verifyEmailUseCase interface {
	Execute(ctx context.Context, cmd principalapp.VerifyEmailCommand) (principal.Principal, error)
}

type passwordResetUseCase interface {
	RequestPasswordReset(ctx context.Context, cmd principalapp.RequestPasswordResetCommand) error
	ResetPassword(ctx context.Context, cmd principalapp.ResetPasswordCommand) (principal.Principal, error)
}

type sessionStore interface {
	Revoke(ctx context.Context, tok *token.AuthToken) error
	RevokeAll(ctx context.Context, p principal.Principal) error
}

type permissionReader interface {
	EffectivePermissions(ctx context.Context, p principal.Principal) (permission.Set, error)
}
