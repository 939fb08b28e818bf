package principal

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// UpdateOperatorStatusCommand changes the role and/or activation of an operator.
// Nil fields are left untouched.
type UpdateOperatorStatusCommand struct {
	UserUID  string
	RoleUID  *string
	IsActive *bool
}

type UpdateOperatorStatusUseCase struct {
	operators principal.OperatorRepository
	roles     RoleAssigner
	sessions  SessionRevoker
	now       biztime.Clock
	logger    logger.Interface
}

func NewUpdateOperatorStatusUseCase(
	operators principal.OperatorRepository,
	roles RoleAssigner,
	sessions SessionRevoker,
	logger logger.Interface,
) *UpdateOperatorStatusUseCase {
	return &UpdateOperatorStatusUseCase{
		operators: operators,
		roles:     roles,
		sessions:  sessions,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// Execute applies cmd. Deactivating an operator revokes all their tokens.
func (uc *UpdateOperatorStatusUseCase) Execute(ctx context.Context, actor *principal.Operator, cmd UpdateOperatorStatusCommand) (*principal.Operator, error) {
	target, err := uc.operators.GetByUUID(ctx, cmd.UserUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	if target == nil || target.IsDeleted() {
		return nil, errors.NewNotExistError("user does not exist").Loc("user_uid", cmd.UserUID, "exist")
	}
	if target.ID() == actor.ID() {
		return nil, errors.NewForbiddenError("you cannot update your own status").Loc("user_uid", cmd.UserUID, "self_update")
	}

	if cmd.RoleUID != nil {
		if err := uc.roles.AssignRole(ctx, actor, target, *cmd.RoleUID); err != nil {
			return nil, err
		}
	}

	if cmd.IsActive != nil && *cmd.IsActive != target.IsActive() {
		target.SetActive(*cmd.IsActive, uc.now())
		if err := uc.operators.Update(ctx, target); err != nil {
			uc.logger.Errorw("failed to update operator status", "error", err, "principal_id", target.ID())
			return nil, fmt.Errorf("failed to update operator: %w", err)
		}
		if !target.IsActive() {
			if err := uc.sessions.RevokeAll(ctx, target); err != nil {
				return nil, err
			}
		}
		uc.logger.Infow("operator status updated", "principal_id", target.ID(), "is_active", target.IsActive())
	}

	return target, nil
}

// UpdateCustomerStatusCommand suspends or reactivates a customer
type UpdateCustomerStatusCommand struct {
	UserUID  string
	IsActive bool
}

type UpdateCustomerStatusUseCase struct {
	customers principal.CustomerRepository
	sessions  SessionRevoker
	now       biztime.Clock
	logger    logger.Interface
}

func NewUpdateCustomerStatusUseCase(
	customers principal.CustomerRepository,
	sessions SessionRevoker,
	logger logger.Interface,
) *UpdateCustomerStatusUseCase {
	return &UpdateCustomerStatusUseCase{
		customers: customers,
		sessions:  sessions,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// Execute applies cmd. Suspending a customer revokes all their tokens.
func (uc *UpdateCustomerStatusUseCase) Execute(ctx context.Context, cmd UpdateCustomerStatusCommand) (*principal.Customer, error) {
	target, err := uc.customers.GetByUUID(ctx, cmd.UserUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if target == nil || target.IsDeleted() {
		return nil, errors.NewNotExistError("user does not exist").Loc("user_uid", cmd.UserUID, "exist")
	}
	if cmd.IsActive == target.IsActive() {
		return target, nil
	}

	target.SetActive(cmd.IsActive, uc.now())
	if err := uc.customers.Update(ctx, target); err != nil {
		uc.logger.Errorw("failed to update customer status", "error", err, "principal_id", target.ID())
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	if !target.IsActive() {
		if err := uc.sessions.RevokeAll(ctx, target); err != nil {
			return nil, err
		}
	}
	uc.logger.Infow("customer status updated", "principal_id", target.ID(), "is_active", target.IsActive())

	return target, nil
}
