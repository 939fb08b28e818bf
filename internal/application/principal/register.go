package principal

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

type RegisterCommand struct {
	Kind      principal.Kind
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterUseCase creates an unverified account and mails its verification token
type RegisterUseCase struct {
	operators principal.OperatorRepository
	customers principal.CustomerRepository
	hasher    principal.PasswordHasher
	secrets   SecretGenerator
	email     EmailService
	now       biztime.Clock
	logger    logger.Interface
}

func NewRegisterUseCase(
	operators principal.OperatorRepository,
	customers principal.CustomerRepository,
	hasher principal.PasswordHasher,
	secrets SecretGenerator,
	email EmailService,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		operators: operators,
		customers: customers,
		hasher:    hasher,
		secrets:   secrets,
		email:     email,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// Execute registers the account. When the verification mail cannot be sent
// the account is kept and an internal error is returned.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (principal.Principal, error) {
	if err := uc.checkUnique(ctx, cmd); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	plain, tokenHash, err := uc.secrets.Generate()
	if err != nil {
		uc.logger.Errorw("failed to generate verification token", "error", err)
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	acc := principal.NewAccount{
		Username:          cmd.Username,
		Email:             cmd.Email,
		FirstName:         cmd.FirstName,
		LastName:          cmd.LastName,
		PasswordHash:      hash,
		VerificationToken: tokenHash,
	}

	var created principal.Principal
	switch cmd.Kind {
	case principal.KindOperator:
		o, err := principal.NewOperator(acc, uc.now())
		if err != nil {
			return nil, errors.NewValidationError(err.Error()).Loc("email", cmd.Email, "invalid")
		}
		if err := uc.operators.Create(ctx, o); err != nil {
			return nil, uc.createFailed(err)
		}
		created = o
	case principal.KindCustomer:
		c, err := principal.NewCustomer(acc, uc.now())
		if err != nil {
			return nil, errors.NewValidationError(err.Error()).Loc("email", cmd.Email, "invalid")
		}
		if err := uc.customers.Create(ctx, c); err != nil {
			return nil, uc.createFailed(err)
		}
		created = c
	default:
		return nil, fmt.Errorf("unsupported principal kind %q", cmd.Kind)
	}

	uc.logger.Infow("account registered",
		"kind", created.Kind(),
		"principal_id", created.ID(),
		"email", utils.MaskEmail(created.Email()),
	)

	if err := uc.email.SendVerificationEmail(created.Email(), plain); err != nil {
		uc.logger.Errorw("failed to send verification email",
			"error", err,
			"principal_id", created.ID(),
		)
		return created, errors.NewInternalError("account created but the verification email could not be sent").
			Loc("email", created.Email(), "mail_failed")
	}

	return created, nil
}

func (uc *RegisterUseCase) checkUnique(ctx context.Context, cmd RegisterCommand) error {
	username := utils.CanonicalIdentifier(cmd.Username)
	email := utils.CanonicalIdentifier(cmd.Email)

	var usernameTaken, emailTaken bool
	var err error
	switch cmd.Kind {
	case principal.KindOperator:
		if usernameTaken, err = uc.operators.ExistsByUsername(ctx, username); err == nil {
			emailTaken, err = uc.operators.ExistsByEmail(ctx, email)
		}
	case principal.KindCustomer:
		if usernameTaken, err = uc.customers.ExistsByUsername(ctx, username); err == nil {
			emailTaken, err = uc.customers.ExistsByEmail(ctx, email)
		}
	default:
		return fmt.Errorf("unsupported principal kind %q", cmd.Kind)
	}
	if err != nil {
		uc.logger.Errorw("failed to check account uniqueness", "error", err)
		return fmt.Errorf("failed to check account uniqueness: %w", err)
	}

	if usernameTaken {
		return errors.NewAlreadyExistsError("this username is already taken").Loc("username", cmd.Username, "unique")
	}
	if emailTaken {
		return errors.NewAlreadyExistsError("this email is already registered").Loc("email", cmd.Email, "unique")
	}
	return nil
}

func (uc *RegisterUseCase) createFailed(err error) error {
	if errors.IsAppError(err) {
		return err
	}
	uc.logger.Errorw("failed to create account", "error", err)
	return fmt.Errorf("failed to create account: %w", err)
}
