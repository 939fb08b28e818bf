// Package catalog holds the immutable list of permissions and features the
// service knows about. It is built once at start-up and shared read-only.
package catalog

import (
	"fmt"
	"sort"

	"github.com/orris-inc/warden/internal/domain/permission"
)

// Known feature codes
const (
	FeatureCreateOrganization = "create_organization"
	FeatureAddMember          = "add_member"
	FeatureAddTask            = "add_task"
	FeatureAddChat            = "add_chat"
)

// Permission types mirror CRUD
const (
	TypeCreate = 1
	TypeRead   = 2
	TypeUpdate = 3
	TypeDelete = 4
)

// PermissionDef is one permission of the catalog
type PermissionDef struct {
	Codename string
	Name     string
	Type     int
	Scope    permission.ScopeType
}

// FeatureDef is one feature of the catalog
type FeatureDef struct {
	Code string
	Name string
}

// Catalog is immutable after construction
type Catalog struct {
	permissions []PermissionDef
	features    []FeatureDef
	permIndex   map[permission.ScopeType]map[string]PermissionDef
	featIndex   map[string]FeatureDef
}

// New builds a catalog, failing on duplicate codenames within a scope or
// duplicate feature codes
func New(perms []PermissionDef, features []FeatureDef) (*Catalog, error) {
	c := &Catalog{
		permIndex: make(map[permission.ScopeType]map[string]PermissionDef),
		featIndex: make(map[string]FeatureDef, len(features)),
	}

	for _, p := range perms {
		if p.Codename == "" {
			return nil, fmt.Errorf("permission codename is required")
		}
		if !p.Scope.IsValid() {
			return nil, fmt.Errorf("permission %s has invalid scope %q", p.Codename, p.Scope)
		}
		if p.Type < TypeCreate || p.Type > TypeDelete {
			return nil, fmt.Errorf("permission %s has invalid type %d", p.Codename, p.Type)
		}
		idx, ok := c.permIndex[p.Scope]
		if !ok {
			idx = make(map[string]PermissionDef)
			c.permIndex[p.Scope] = idx
		}
		if _, dup := idx[p.Codename]; dup {
			return nil, fmt.Errorf("duplicate %s permission codename %s", p.Scope, p.Codename)
		}
		idx[p.Codename] = p
		c.permissions = append(c.permissions, p)
	}

	for _, f := range features {
		if f.Code == "" {
			return nil, fmt.Errorf("feature code is required")
		}
		if _, dup := c.featIndex[f.Code]; dup {
			return nil, fmt.Errorf("duplicate feature code %s", f.Code)
		}
		c.featIndex[f.Code] = f
		c.features = append(c.features, f)
	}

	return c, nil
}

// Permissions returns the definitions of scope sorted by codename
func (c *Catalog) Permissions(scope permission.ScopeType) []PermissionDef {
	out := make([]PermissionDef, 0, len(c.permIndex[scope]))
	for _, p := range c.permIndex[scope] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codename < out[j].Codename })
	return out
}

// AllPermissions returns every definition in declaration order
func (c *Catalog) AllPermissions() []PermissionDef {
	return append([]PermissionDef(nil), c.permissions...)
}

// Features returns the feature definitions in declaration order
func (c *Catalog) Features() []FeatureDef {
	return append([]FeatureDef(nil), c.features...)
}

// HasPermission reports whether codename exists within scope
func (c *Catalog) HasPermission(scope permission.ScopeType, codename string) bool {
	_, ok := c.permIndex[scope][codename]
	return ok
}

// FirstUnknownPermission returns the first codename not defined for scope
func (c *Catalog) FirstUnknownPermission(scope permission.ScopeType, codenames []string) (string, bool) {
	for _, cn := range codenames {
		if !c.HasPermission(scope, cn) {
			return cn, true
		}
	}
	return "", false
}

// HasFeature reports whether code is a known feature
func (c *Catalog) HasFeature(code string) bool {
	_, ok := c.featIndex[code]
	return ok
}
