package permission

import "fmt"

// ScopeType separates platform permissions from organization permissions
type ScopeType string

const (
	ScopePlatform     ScopeType = "platform"
	ScopeOrganization ScopeType = "organization"
)

// IsValid checks if the scope type is known
func (s ScopeType) IsValid() bool {
	return s == ScopePlatform || s == ScopeOrganization
}

func (s ScopeType) String() string {
	return string(s)
}

// Scope locates a role: the platform, or one organization
type Scope struct {
	Type           ScopeType
	OrganizationID uint
}

// PlatformScope returns the platform scope
func PlatformScope() Scope {
	return Scope{Type: ScopePlatform}
}

// OrganizationScope returns the scope of a single organization
func OrganizationScope(orgID uint) Scope {
	return Scope{Type: ScopeOrganization, OrganizationID: orgID}
}

// IsPlatform reports whether this is the platform scope
func (s Scope) IsPlatform() bool {
	return s.Type == ScopePlatform
}

// Key is the value stored in roles.scope_key, "platform" or "org:<id>"
func (s Scope) Key() string {
	if s.IsPlatform() {
		return string(ScopePlatform)
	}
	return fmt.Sprintf("org:%d", s.OrganizationID)
}

// Validate checks that an organization scope names an organization
func (s Scope) Validate() error {
	switch s.Type {
	case ScopePlatform:
		if s.OrganizationID != 0 {
			return fmt.Errorf("platform scope cannot carry an organization")
		}
	case ScopeOrganization:
		if s.OrganizationID == 0 {
			return fmt.Errorf("organization scope requires an organization ID")
		}
	default:
		return fmt.Errorf("invalid scope type: %s", s.Type)
	}
	return nil
}
