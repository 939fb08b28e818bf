package principal

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type CreateSuperuserCommand struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// CreateSuperuserUseCase bootstraps the first operator. It refuses to run
// once any operator holds the superuser role.
type CreateSuperuserUseCase struct {
	operators principal.OperatorRepository
	roles     permission.RoleRepository
	hasher    principal.PasswordHasher
	tx        db.Transactor
	now       biztime.Clock
	logger    logger.Interface
}

func NewCreateSuperuserUseCase(
	operators principal.OperatorRepository,
	roles permission.RoleRepository,
	hasher principal.PasswordHasher,
	tx db.Transactor,
	logger logger.Interface,
) *CreateSuperuserUseCase {
	return &CreateSuperuserUseCase{
		operators: operators,
		roles:     roles,
		hasher:    hasher,
		tx:        tx,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

func (uc *CreateSuperuserUseCase) Execute(ctx context.Context, cmd CreateSuperuserCommand) (*principal.Operator, error) {
	exists, err := uc.operators.HasSuperuser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check superuser: %w", err)
	}
	if exists {
		return nil, errors.NewAlreadyExistsError("a superuser already exists").Loc("username", cmd.Username, "superuser_exists")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := uc.now()
	op, err := principal.NewOperator(principal.NewAccount{
		Username:     cmd.Username,
		Email:        cmd.Email,
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		PasswordHash: hash,
	}, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).Loc("email", cmd.Email, "invalid")
	}
	op.MarkEmailVerified(now)

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		role, err := uc.superuserRole(ctx, now)
		if err != nil {
			return err
		}
		roleID := role.ID()
		op.SetRole(&roleID, now)
		return uc.operators.Create(ctx, op)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create superuser", "error", err)
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}

	uc.logger.Infow("superuser created", "principal_id", op.ID(), "username", op.Username())
	return op, nil
}

func (uc *CreateSuperuserUseCase) superuserRole(ctx context.Context, now time.Time) (*permission.Role, error) {
	role, err := uc.roles.GetSuperuser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get superuser role: %w", err)
	}
	if role != nil {
		return role, nil
	}

	role, err = permission.NewRole(permission.SuperuserRoleName, permission.RoleKindSuperuser, permission.PlatformScope(), nil, now)
	if err != nil {
		return nil, err
	}
	if err := uc.roles.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to create superuser role: %w", err)
	}
	return role, nil
}
