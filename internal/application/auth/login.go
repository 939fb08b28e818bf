package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// TokenIssuer issues tokens for an authenticated principal
type TokenIssuer interface {
	Issue(ctx context.Context, p principal.Principal, clientMeta map[string]any) (*token.AuthToken, string, error)
}

type LoginCommand struct {
	Kind            principal.Kind
	UsernameOrEmail string
	Password        string
	ClientMeta      map[string]any
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal principal.Principal
}

type LoginUseCase struct {
	operators principal.OperatorRepository
	customers principal.CustomerRepository
	hasher    principal.PasswordHasher
	issuer    TokenIssuer
	now       biztime.Clock
	logger    logger.Interface
}

func NewLoginUseCase(
	operators principal.OperatorRepository,
	customers principal.CustomerRepository,
	hasher principal.PasswordHasher,
	issuer TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		operators: operators,
		customers: customers,
		hasher:    hasher,
		issuer:    issuer,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// authenticatable is satisfied by both *principal.Operator and *principal.Customer
type authenticatable interface {
	principal.Principal
	IsEmailVerified() bool
	SetPasswordHash(hash string, now time.Time)
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	login := utils.CanonicalIdentifier(cmd.UsernameOrEmail)

	account, err := uc.lookup(ctx, cmd.Kind, login)
	if err != nil {
		uc.logger.Errorw("failed to look up principal", "kind", cmd.Kind, "error", err)
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}

	// Unknown login and wrong password share one error so neither is revealed
	if account == nil || account.IsDeleted() {
		return nil, invalidCredentials(cmd.UsernameOrEmail)
	}
	if err := uc.hasher.Verify(cmd.Password, account.PasswordHash()); err != nil {
		uc.logger.Warnw("password verification failed", "kind", cmd.Kind, "principal_id", account.ID())
		return nil, invalidCredentials(cmd.UsernameOrEmail)
	}

	if !account.IsEmailVerified() {
		return nil, errors.NewForbiddenError("email address has not been verified").
			Loc("username_or_email", cmd.UsernameOrEmail, "verification_required")
	}
	if !account.IsActive() {
		return nil, errors.NewForbiddenError("account is suspended").
			Loc("username_or_email", cmd.UsernameOrEmail, "suspended")
	}

	if uc.hasher.NeedsRehash(account.PasswordHash()) {
		uc.rehash(ctx, account, cmd.Password)
	}

	tok, plain, err := uc.issuer.Issue(ctx, account, cmd.ClientMeta)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("principal logged in", "kind", cmd.Kind, "principal_id", account.ID())

	return &LoginResult{
		Token:     plain,
		ExpiresAt: tok.ExpiresAt(),
		Principal: account,
	}, nil
}

func (uc *LoginUseCase) lookup(ctx context.Context, kind principal.Kind, login string) (authenticatable, error) {
	switch kind {
	case principal.KindOperator:
		o, err := uc.operators.GetByLogin(ctx, login)
		if err != nil || o == nil {
			return nil, err
		}
		return o, nil
	case principal.KindCustomer:
		c, err := uc.customers.GetByLogin(ctx, login)
		if err != nil || c == nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown principal kind %q", kind)
	}
}

// rehash stores the password under the current hashing parameters. A failure
// is logged and the login proceeds with the old hash.
func (uc *LoginUseCase) rehash(ctx context.Context, account authenticatable, password string) {
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.logger.Warnw("failed to rehash password", "kind", account.Kind(), "principal_id", account.ID(), "error", err)
		return
	}
	account.SetPasswordHash(hash, uc.now())

	switch a := account.(type) {
	case *principal.Operator:
		err = uc.operators.Update(ctx, a)
	case *principal.Customer:
		err = uc.customers.Update(ctx, a)
	}
	if err != nil {
		uc.logger.Warnw("failed to store rehashed password", "kind", account.Kind(), "principal_id", account.ID(), "error", err)
		return
	}
	uc.logger.Infow("password rehashed", "kind", account.Kind(), "principal_id", account.ID())
}

func invalidCredentials(input string) error {
	return errors.NewForbiddenError("unable to log in with the provided credentials").
		Loc("username_or_email", input, "verification_failed")
}
