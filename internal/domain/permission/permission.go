// Package permission models roles, catalog permissions and resolved
// permission sets for both the platform and organization scopes.
package permission

import (
	"fmt"
	"time"
)

// Permission is a catalog row. Codenames are unique per scope type.
type Permission struct {
	id        uint
	codename  string
	name      string
	permType  int
	scope     ScopeType
	createdAt time.Time
}

func NewPermission(codename, name string, permType int, scope ScopeType, now time.Time) (*Permission, error) {
	if codename == "" {
		return nil, fmt.Errorf("codename is required")
	}
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid scope type: %s", scope)
	}
	return &Permission{
		codename:  codename,
		name:      name,
		permType:  permType,
		scope:     scope,
		createdAt: now,
	}, nil
}

func ReconstructPermission(id uint, codename, name string, permType int, scope ScopeType, createdAt time.Time) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}
	return &Permission{
		id:        id,
		codename:  codename,
		name:      name,
		permType:  permType,
		scope:     scope,
		createdAt: createdAt,
	}, nil
}

func (p *Permission) ID() uint {
	return p.id
}

func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) Codename() string     { return p.codename }
func (p *Permission) Name() string         { return p.name }
func (p *Permission) Type() int            { return p.permType }
func (p *Permission) Scope() ScopeType     { return p.scope }
func (p *Permission) CreatedAt() time.Time { return p.createdAt }
