package principal

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type VerifyEmailCommand struct {
	Kind  principal.Kind
	Token string
}

type VerifyEmailUseCase struct {
	operators principal.OperatorRepository
	customers principal.CustomerRepository
	secrets   SecretGenerator
	now       biztime.Clock
	logger    logger.Interface
}

func NewVerifyEmailUseCase(
	operators principal.OperatorRepository,
	customers principal.CustomerRepository,
	secrets SecretGenerator,
	logger logger.Interface,
) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		operators: operators,
		customers: customers,
		secrets:   secrets,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, cmd VerifyEmailCommand) (principal.Principal, error) {
	if cmd.Token == "" {
		return nil, invalidVerificationToken()
	}
	hash := uc.secrets.Hash(cmd.Token)
	now := uc.now()

	switch cmd.Kind {
	case principal.KindOperator:
		o, err := uc.operators.GetByVerificationToken(ctx, hash)
		if err != nil {
			uc.logger.Errorw("failed to get operator by verification token", "error", err)
			return nil, fmt.Errorf("failed to get operator: %w", err)
		}
		if o == nil || o.IsDeleted() {
			return nil, invalidVerificationToken()
		}
		if !o.IsActive() {
			return nil, suspendedAccount()
		}
		o.MarkEmailVerified(now)
		if err := uc.operators.Update(ctx, o); err != nil {
			return nil, fmt.Errorf("failed to update operator: %w", err)
		}
		uc.logger.Infow("email verified", "kind", o.Kind(), "principal_id", o.ID())
		return o, nil

	case principal.KindCustomer:
		c, err := uc.customers.GetByVerificationToken(ctx, hash)
		if err != nil {
			uc.logger.Errorw("failed to get customer by verification token", "error", err)
			return nil, fmt.Errorf("failed to get customer: %w", err)
		}
		if c == nil || c.IsDeleted() {
			return nil, invalidVerificationToken()
		}
		if !c.IsActive() {
			return nil, suspendedAccount()
		}
		c.MarkEmailVerified(now)
		if err := uc.customers.Update(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
		uc.logger.Infow("email verified", "kind", c.Kind(), "principal_id", c.ID())
		return c, nil
	}

	return nil, fmt.Errorf("unsupported principal kind %q", cmd.Kind)
}

func invalidVerificationToken() error {
	return errors.NewForbiddenError("invalid or already used verification token").Loc("token", nil, "not_exist")
}

func suspendedAccount() error {
	return errors.NewForbiddenError("this account has been deactivated").Loc("token", nil, "suspended")
}
