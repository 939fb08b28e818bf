package principal

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

type RequestPasswordResetCommand struct {
	Kind  principal.Kind
	Email string
}

type ResetPasswordCommand struct {
	Kind     principal.Kind
	Token    string
	Password string
}

// resettable is satisfied by both *principal.Operator and *principal.Customer
type resettable interface {
	principal.Principal
	IsEmailVerified() bool
	SetVerificationToken(token string, now time.Time)
	ClearVerificationToken(now time.Time)
	SetPasswordHash(hash string, now time.Time)
}

// PasswordResetUseCase mails a single-use token and later exchanges it for a
// new password. The token shares the column used by email verification.
type PasswordResetUseCase struct {
	operators principal.OperatorRepository
	customers principal.CustomerRepository
	hasher    principal.PasswordHasher
	secrets   SecretGenerator
	email     EmailService
	sessions  SessionRevoker
	now       biztime.Clock
	logger    logger.Interface
}

func NewPasswordResetUseCase(
	operators principal.OperatorRepository,
	customers principal.CustomerRepository,
	hasher principal.PasswordHasher,
	secrets SecretGenerator,
	email EmailService,
	sessions SessionRevoker,
	logger logger.Interface,
) *PasswordResetUseCase {
	return &PasswordResetUseCase{
		operators: operators,
		customers: customers,
		hasher:    hasher,
		secrets:   secrets,
		email:     email,
		sessions:  sessions,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// RequestPasswordReset replaces the account's outstanding token and mails the
// new one. Suspended accounts are refused.
func (uc *PasswordResetUseCase) RequestPasswordReset(ctx context.Context, cmd RequestPasswordResetCommand) error {
	acc, err := uc.byEmail(ctx, cmd.Kind, utils.CanonicalIdentifier(cmd.Email))
	if err != nil {
		uc.logger.Errorw("failed to look up account for password reset", "kind", cmd.Kind, "error", err)
		return fmt.Errorf("failed to get account: %w", err)
	}
	if acc == nil || acc.IsDeleted() {
		return errors.NewForbiddenError("no account found").Loc("email", cmd.Email, "not_exist")
	}
	if !acc.IsActive() {
		return errors.NewForbiddenError("this account has been deactivated").Loc("email", cmd.Email, "suspended")
	}

	plain, tokenHash, err := uc.secrets.Generate()
	if err != nil {
		uc.logger.Errorw("failed to generate password reset token", "error", err)
		return fmt.Errorf("failed to generate password reset token: %w", err)
	}
	acc.SetVerificationToken(tokenHash, uc.now())
	if err := uc.save(ctx, acc); err != nil {
		return err
	}

	if err := uc.email.SendPasswordResetEmail(acc.Email(), plain); err != nil {
		uc.logger.Errorw("failed to send password reset email", "error", err, "principal_id", acc.ID())
		return errors.NewInternalError("the password reset email could not be sent").
			Loc("email", cmd.Email, "mail_failed")
	}

	uc.logger.Infow("password reset requested",
		"kind", acc.Kind(),
		"principal_id", acc.ID(),
		"email", utils.MaskEmail(acc.Email()),
	)
	return nil
}

// ResetPassword consumes the token, stores the new password and revokes
// every token the account holds.
func (uc *PasswordResetUseCase) ResetPassword(ctx context.Context, cmd ResetPasswordCommand) (principal.Principal, error) {
	if cmd.Token == "" {
		return nil, expiredResetToken()
	}

	acc, err := uc.byToken(ctx, cmd.Kind, uc.secrets.Hash(cmd.Token))
	if err != nil {
		uc.logger.Errorw("failed to look up account by reset token", "kind", cmd.Kind, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if acc == nil || acc.IsDeleted() {
		return nil, expiredResetToken()
	}
	if !acc.IsEmailVerified() {
		return nil, errors.NewForbiddenError("email address has not been verified").Loc("token", nil, "verification_required")
	}
	if !acc.IsActive() {
		return nil, suspendedAccount()
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := uc.now()
	acc.SetPasswordHash(hash, now)
	acc.ClearVerificationToken(now)
	if err := uc.save(ctx, acc); err != nil {
		return nil, err
	}

	if err := uc.sessions.RevokeAll(ctx, acc); err != nil {
		return nil, err
	}

	uc.logger.Infow("password reset", "kind", acc.Kind(), "principal_id", acc.ID())
	return acc, nil
}

func (uc *PasswordResetUseCase) byEmail(ctx context.Context, kind principal.Kind, email string) (resettable, error) {
	switch kind {
	case principal.KindOperator:
		o, err := uc.operators.GetByLogin(ctx, email)
		if err != nil || o == nil || o.Email() != email {
			return nil, err
		}
		return o, nil
	case principal.KindCustomer:
		c, err := uc.customers.GetByLogin(ctx, email)
		if err != nil || c == nil || c.Email() != email {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unsupported principal kind %q", kind)
}

func (uc *PasswordResetUseCase) byToken(ctx context.Context, kind principal.Kind, hash string) (resettable, error) {
	switch kind {
	case principal.KindOperator:
		o, err := uc.operators.GetByVerificationToken(ctx, hash)
		if err != nil || o == nil {
			return nil, err
		}
		return o, nil
	case principal.KindCustomer:
		c, err := uc.customers.GetByVerificationToken(ctx, hash)
		if err != nil || c == nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unsupported principal kind %q", kind)
}

func (uc *PasswordResetUseCase) save(ctx context.Context, acc resettable) error {
	var err error
	switch a := acc.(type) {
	case *principal.Operator:
		err = uc.operators.Update(ctx, a)
	case *principal.Customer:
		err = uc.customers.Update(ctx, a)
	}
	if err != nil {
		uc.logger.Errorw("failed to update account", "kind", acc.Kind(), "principal_id", acc.ID(), "error", err)
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

func expiredResetToken() error {
	return errors.NewForbiddenError("invalid or expired password reset token").Loc("token", nil, "expired")
}
