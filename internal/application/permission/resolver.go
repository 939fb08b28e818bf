// Package permission resolves principals and roles to permission sets and
// administers roles in both scopes.
package permission

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/catalog"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// Resolver reads role grants from storage on every call
type Resolver struct {
	roles     permission.RoleRepository
	perms     permission.PermissionRepository
	operators principal.OperatorRepository
	customers principal.CustomerRepository
	catalog   *catalog.Catalog
	tx        db.Transactor
	now       biztime.Clock
	logger    logger.Interface
}

func NewResolver(
	roles permission.RoleRepository,
	perms permission.PermissionRepository,
	operators principal.OperatorRepository,
	customers principal.CustomerRepository,
	cat *catalog.Catalog,
	tx db.Transactor,
	logger logger.Interface,
) *Resolver {
	return &Resolver{
		roles:     roles,
		perms:     perms,
		operators: operators,
		customers: customers,
		catalog:   cat,
		tx:        tx,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// EffectivePermissions returns the platform permission set of p. A principal
// without a role has the empty set.
func (r *Resolver) EffectivePermissions(ctx context.Context, p principal.Principal) (permission.Set, error) {
	roleID := p.RoleID()
	if roleID == nil {
		return permission.Set{}, nil
	}
	return r.RolePermissions(ctx, *roleID)
}

// RolePermissions returns the set granted by a role. The superuser role grants All.
func (r *Resolver) RolePermissions(ctx context.Context, roleID uint) (permission.Set, error) {
	role, err := r.roles.GetByID(ctx, roleID)
	if err != nil {
		return permission.Set{}, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return permission.Set{}, nil
	}
	if role.IsSuperuser() {
		return permission.All(), nil
	}

	codenames, err := r.perms.RoleCodenames(ctx, role.ID())
	if err != nil {
		return permission.Set{}, fmt.Errorf("failed to get role permissions: %w", err)
	}
	return permission.NewSet(codenames...), nil
}

// HasAll reports whether p holds every required codename
func (r *Resolver) HasAll(ctx context.Context, p principal.Principal, required ...string) (bool, error) {
	set, err := r.EffectivePermissions(ctx, p)
	if err != nil {
		return false, err
	}
	return set.HasAll(required...), nil
}

// AssignRole gives target the platform role roleUID. An operator cannot
// change their own role and only a superuser can hand out the superuser role.
func (r *Resolver) AssignRole(ctx context.Context, actor, target principal.Principal, roleUID string) error {
	role, err := r.roles.GetByUID(ctx, roleUID)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil || !role.Scope().IsPlatform() {
		return errors.NewNotExistError("role does not exist").Loc("role", roleUID, "exist")
	}
	if actor.Kind() == target.Kind() && actor.ID() == target.ID() {
		return errors.NewForbiddenError("you cannot change your own role").Loc("user_uid", target.UUID(), "self_update")
	}
	if role.IsSuperuser() {
		set, err := r.EffectivePermissions(ctx, actor)
		if err != nil {
			return err
		}
		if !set.IsAll() {
			return errors.NewForbiddenError("only a superuser can grant the superuser role").Loc("role", roleUID, "superuser")
		}
	}

	roleID := role.ID()
	now := r.now()
	switch t := target.(type) {
	case *principal.Operator:
		t.SetRole(&roleID, now)
		err = r.operators.Update(ctx, t)
	case *principal.Customer:
		t.SetRole(&roleID, now)
		err = r.customers.Update(ctx, t)
	default:
		return fmt.Errorf("unsupported principal type %T", target)
	}
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	r.logger.Infow("role assigned", "role", role.UID(), "kind", target.Kind(), "principal_id", target.ID())
	return nil
}

// SetPermissions replaces the permissions of a platform role
func (r *Resolver) SetPermissions(ctx context.Context, actor principal.Principal, roleUID string, codenames []string) error {
	role, err := r.roles.GetByUID(ctx, roleUID)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil || !role.Scope().IsPlatform() {
		return errors.NewNotExistError("role does not exist").Loc("role", roleUID, "exist")
	}
	return r.ReplaceRolePermissions(ctx, role, actor.RoleID(), codenames)
}

// ReplaceRolePermissions swaps the complete grant list of role in one
// transaction. heldRoleID is the role the acting principal holds in role's
// scope; editing it is refused.
func (r *Resolver) ReplaceRolePermissions(ctx context.Context, role *permission.Role, heldRoleID *uint, codenames []string) error {
	if role.IsSuperuser() {
		return errors.NewForbiddenError("the superuser role cannot be edited").Loc("role", role.UID(), "superuser")
	}
	if heldRoleID != nil && *heldRoleID == role.ID() {
		return errors.NewForbiddenError("you cannot edit the permissions of your own role").Loc("role", role.UID(), "self_update")
	}

	ids, err := r.PermissionIDs(ctx, role.Scope().Type, codenames)
	if err != nil {
		return err
	}

	err = r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return r.perms.ReplaceRolePermissions(ctx, role.ID(), ids)
	})
	if err != nil {
		return fmt.Errorf("failed to replace role permissions: %w", err)
	}

	r.logger.Infow("role permissions replaced", "role", role.UID(), "count", len(ids))
	return nil
}

// CreateRole creates a standard role in scope with an initial permission set
func (r *Resolver) CreateRole(ctx context.Context, creator principal.Principal, scope permission.Scope, name string, codenames []string) (*permission.Role, error) {
	ids, err := r.PermissionIDs(ctx, scope.Type, codenames)
	if err != nil {
		return nil, err
	}

	existing, err := r.roles.GetByName(ctx, scope, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check role name: %w", err)
	}
	if existing != nil {
		return nil, errors.NewAlreadyExistsError("a role with this name already exists").Loc("name", name, "unique")
	}

	var createdBy *uint
	if creator != nil {
		cid := creator.ID()
		createdBy = &cid
	}
	role, err := permission.NewRole(name, permission.RoleKindStandard, scope, createdBy, r.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).Loc("name", name, "invalid")
	}

	err = r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := r.roles.Create(ctx, role); err != nil {
			return err
		}
		return r.perms.ReplaceRolePermissions(ctx, role.ID(), ids)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	r.logger.Infow("role created", "role", role.UID(), "scope", scope.Key())
	return role, nil
}

// ListRoles returns the roles of scope. The superuser role is never listed.
func (r *Resolver) ListRoles(ctx context.Context, scope permission.Scope) ([]*permission.Role, error) {
	roles, err := r.roles.List(ctx, scope, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// ListPermissions returns the stored catalog permissions of scope
func (r *Resolver) ListPermissions(ctx context.Context, scope permission.ScopeType) ([]*permission.Permission, error) {
	perms, err := r.perms.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

// PermissionIDs maps codenames of scope to permission row IDs. The first
// codename the catalog or storage does not know is reported as not_exist.
func (r *Resolver) PermissionIDs(ctx context.Context, scope permission.ScopeType, codenames []string) ([]uint, error) {
	unique := dedupe(codenames)
	if len(unique) == 0 {
		return nil, nil
	}

	if unknown, found := r.catalog.FirstUnknownPermission(scope, unique); found {
		return nil, errors.NewNotExistError("permission does not exist").Loc("permissions", unknown, "exist")
	}

	rows, err := r.perms.GetByCodenames(ctx, scope, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions: %w", err)
	}

	byCodename := make(map[string]uint, len(rows))
	for _, p := range rows {
		byCodename[p.Codename()] = p.ID()
	}
	ids := make([]uint, 0, len(unique))
	for _, c := range unique {
		id, ok := byCodename[c]
		if !ok {
			return nil, errors.NewNotExistError("permission does not exist").Loc("permissions", c, "exist")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
