package permission

import "context"

// RoleRepository defines persistence operations for roles
type RoleRepository interface {
	// Create inserts the role. A (scope, name) clash returns AlreadyExists.
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetByUID(ctx context.Context, uid string) (*Role, error)
	GetByName(ctx context.Context, scope Scope, name string) (*Role, error)
	// GetSuperuser returns the platform superuser role, nil when none exists
	GetSuperuser(ctx context.Context) (*Role, error)
	// List returns the roles of scope. The superuser role is left out unless
	// includeSuperuser is set.
	List(ctx context.Context, scope Scope, includeSuperuser bool) ([]*Role, error)
}

// PermissionRepository defines persistence operations for catalog permissions
// and the grants that reference them
type PermissionRepository interface {
	// CreateIfMissing inserts the permission unless (scope, codename) exists.
	// It reports whether a row was inserted.
	CreateIfMissing(ctx context.Context, p *Permission) (bool, error)
	ListByScope(ctx context.Context, scope ScopeType) ([]*Permission, error)
	// GetByCodenames returns the rows of scope matching codenames. Unknown
	// codenames are simply absent from the result.
	GetByCodenames(ctx context.Context, scope ScopeType, codenames []string) ([]*Permission, error)

	// RoleCodenames returns the codenames granted to a role
	RoleCodenames(ctx context.Context, roleID uint) ([]string, error)
	// ReplaceRolePermissions deletes every grant of the role, then inserts permissionIDs
	ReplaceRolePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error

	// MemberCodenames returns the codenames granted directly to a membership
	MemberCodenames(ctx context.Context, membershipID uint) ([]string, error)
	// ReplaceMemberPermissions deletes every direct grant of the membership, then inserts permissionIDs
	ReplaceMemberPermissions(ctx context.Context, membershipID uint, permissionIDs []uint) error
}
