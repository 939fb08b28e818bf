package permission

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/warden/internal/shared/id"
)

// RoleKind tags roles that bypass permission checks
type RoleKind string

const (
	RoleKindSuperuser RoleKind = "superuser"
	RoleKindStandard  RoleKind = "standard"
)

// IsValid checks if the role kind is known
func (k RoleKind) IsValid() bool {
	return k == RoleKindSuperuser || k == RoleKindStandard
}

// SuperuserRoleName is the name of the single platform superuser role
const SuperuserRoleName = "Superuser"

// Role groups permissions within a scope
type Role struct {
	id        uint
	uid       string
	name      string
	kind      RoleKind
	scope     Scope
	createdBy *uint
	createdAt time.Time
	updatedAt time.Time
}

// NewRole creates a role with a fresh uid
func NewRole(name string, kind RoleKind, scope Scope, createdBy *uint, now time.Time) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid role kind: %s", kind)
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if kind == RoleKindSuperuser && !scope.IsPlatform() {
		return nil, fmt.Errorf("superuser role must be platform scoped")
	}

	uid, err := id.New(id.PrefixRole)
	if err != nil {
		return nil, err
	}

	return &Role{
		uid:       uid,
		name:      name,
		kind:      kind,
		scope:     scope,
		createdBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructRole reconstructs a role from persistence
func ReconstructRole(id uint, uid, name string, kind RoleKind, scope Scope, createdBy *uint, createdAt, updatedAt time.Time) (*Role, error) {
	if id == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid role kind: %s", kind)
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	return &Role{
		id:        id,
		uid:       uid,
		name:      name,
		kind:      kind,
		scope:     scope,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (r *Role) ID() uint {
	return r.id
}

func (r *Role) UID() string {
	return r.uid
}

func (r *Role) Name() string {
	return r.name
}

func (r *Role) Kind() RoleKind {
	return r.kind
}

func (r *Role) Scope() Scope {
	return r.scope
}

func (r *Role) CreatedBy() *uint {
	return r.createdBy
}

func (r *Role) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Role) UpdatedAt() time.Time {
	return r.updatedAt
}

// IsSuperuser reports whether the role bypasses permission checks
func (r *Role) IsSuperuser() bool {
	return r.kind == RoleKindSuperuser
}

// InOrganization reports whether the role belongs to the organization
func (r *Role) InOrganization(orgID uint) bool {
	return r.scope.Type == ScopeOrganization && r.scope.OrganizationID == orgID
}

func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}
