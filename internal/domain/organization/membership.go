package organization

import (
	"fmt"
	"time"

	"github.com/orris-inc/warden/internal/shared/id"
)

// Membership binds a customer to an organization with one org-scoped role.
// A pending membership (is_active false) grants nothing until activated.
type Membership struct {
	id             uint
	uid            string
	organizationID uint
	customerID     uint
	roleID         uint
	isActive       bool
	deletedAt      *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewMembership creates a membership. active is false for organizations
// requiring approval.
func NewMembership(organizationID, customerID, roleID uint, active bool, now time.Time) (*Membership, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if roleID == 0 {
		return nil, fmt.Errorf("role ID is required")
	}

	uid, err := id.New(id.PrefixMembership)
	if err != nil {
		return nil, err
	}

	return &Membership{
		uid:            uid,
		organizationID: organizationID,
		customerID:     customerID,
		roleID:         roleID,
		isActive:       active,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructMembership reconstructs a membership from persistence
func ReconstructMembership(id uint, uid string, organizationID, customerID, roleID uint, isActive bool, deletedAt *time.Time, createdAt, updatedAt time.Time) (*Membership, error) {
	if id == 0 {
		return nil, fmt.Errorf("membership ID cannot be zero")
	}
	return &Membership{
		id:             id,
		uid:            uid,
		organizationID: organizationID,
		customerID:     customerID,
		roleID:         roleID,
		isActive:       isActive,
		deletedAt:      deletedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (m *Membership) ID() uint              { return m.id }
func (m *Membership) UID() string           { return m.uid }
func (m *Membership) OrganizationID() uint  { return m.organizationID }
func (m *Membership) CustomerID() uint      { return m.customerID }
func (m *Membership) RoleID() uint          { return m.roleID }
func (m *Membership) IsActive() bool        { return m.isActive }
func (m *Membership) IsDeleted() bool       { return m.deletedAt != nil }
func (m *Membership) DeletedAt() *time.Time { return m.deletedAt }
func (m *Membership) CreatedAt() time.Time  { return m.createdAt }
func (m *Membership) UpdatedAt() time.Time  { return m.updatedAt }

func (m *Membership) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("membership ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("membership ID cannot be zero")
	}
	m.id = id
	return nil
}

// Activate approves a pending membership
func (m *Membership) Activate(now time.Time) error {
	if m.IsDeleted() {
		return fmt.Errorf("membership has been removed")
	}
	if m.isActive {
		return fmt.Errorf("membership is already active")
	}
	m.isActive = true
	m.updatedAt = now
	return nil
}

// AssignRole switches the membership role
func (m *Membership) AssignRole(roleID uint, now time.Time) error {
	if roleID == 0 {
		return fmt.Errorf("role ID is required")
	}
	m.roleID = roleID
	m.updatedAt = now
	return nil
}

// HoldsQuotaSlot reports whether the membership counts against the add_member quota
func (m *Membership) HoldsQuotaSlot() bool {
	return m.isActive && !m.IsDeleted()
}
