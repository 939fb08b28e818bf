package tenant

import (
	"context"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/subscription"
)

// EntitlementGate is the part of the entitlement gate the tenant services use
type EntitlementGate interface {
	RequireEnrollment(ctx context.Context, c *principal.Customer) (*subscription.Plan, *subscription.Enrollment, error)
	CheckQuota(ctx context.Context, c *principal.Customer, featureCode string, live int64) (*subscription.PlanFeature, error)
	Reserve(ctx context.Context, c *principal.Customer, feature *subscription.PlanFeature, scope, resourceRef string) error
	Release(ctx context.Context, featureCode, scope, resourceRef string) error
}

// RoleAdmin resolves and edits organization roles
type RoleAdmin interface {
	RolePermissions(ctx context.Context, roleID uint) (permission.Set, error)
	CreateRole(ctx context.Context, creator principal.Principal, scope permission.Scope, name string, codenames []string) (*permission.Role, error)
	ListRoles(ctx context.Context, scope permission.Scope) ([]*permission.Role, error)
	ListPermissions(ctx context.Context, scope permission.ScopeType) ([]*permission.Permission, error)
	ReplaceRolePermissions(ctx context.Context, role *permission.Role, heldRoleID *uint, codenames []string) error
	PermissionIDs(ctx context.Context, scope permission.ScopeType, codenames []string) ([]uint, error)
}
