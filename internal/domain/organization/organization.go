// Package organization models tenants and the customers that belong to them.
package organization

import (
	"fmt"
	"time"

	"github.com/orris-inc/warden/internal/shared/id"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// RegistrationType controls how customers join an organization
type RegistrationType string

const (
	RegistrationOpen             RegistrationType = "open"
	RegistrationApprovalRequired RegistrationType = "approval_required"
	RegistrationAdminOnly        RegistrationType = "admin_only"
)

// IsValid checks if the registration type is known
func (r RegistrationType) IsValid() bool {
	switch r {
	case RegistrationOpen, RegistrationApprovalRequired, RegistrationAdminOnly:
		return true
	default:
		return false
	}
}

func (r RegistrationType) String() string {
	return string(r)
}

// Organization is a tenant administered by one customer
type Organization struct {
	id               uint
	uid              string
	name             string
	nameKey          string
	adminID          uint
	registrationType RegistrationType
	isActive         bool
	deletedAt        *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewOrganization creates an active organization administered by adminID
func NewOrganization(name string, adminID uint, registrationType RegistrationType, now time.Time) (*Organization, error) {
	display := utils.DisplayName(name)
	if display == "" {
		return nil, fmt.Errorf("organization name is required")
	}
	if adminID == 0 {
		return nil, fmt.Errorf("admin ID is required")
	}
	if !registrationType.IsValid() {
		return nil, fmt.Errorf("invalid registration type: %s", registrationType)
	}

	uid, err := id.New(id.PrefixOrganization)
	if err != nil {
		return nil, err
	}

	return &Organization{
		uid:              uid,
		name:             display,
		nameKey:          NameKey(display),
		adminID:          adminID,
		registrationType: registrationType,
		isActive:         true,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// NameKey is the canonical form organization names are unique on
func NameKey(name string) string {
	return utils.CanonicalIdentifier(name)
}

// OrganizationData carries persisted state into ReconstructOrganization
type OrganizationData struct {
	ID               uint
	UID              string
	Name             string
	NameKey          string
	AdminID          uint
	RegistrationType RegistrationType
	IsActive         bool
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructOrganization reconstructs an organization from persistence
func ReconstructOrganization(d OrganizationData) (*Organization, error) {
	if d.ID == 0 {
		return nil, fmt.Errorf("organization ID cannot be zero")
	}
	if !d.RegistrationType.IsValid() {
		return nil, fmt.Errorf("invalid registration type: %s", d.RegistrationType)
	}
	return &Organization{
		id:               d.ID,
		uid:              d.UID,
		name:             d.Name,
		nameKey:          d.NameKey,
		adminID:          d.AdminID,
		registrationType: d.RegistrationType,
		isActive:         d.IsActive,
		deletedAt:        d.DeletedAt,
		createdAt:        d.CreatedAt,
		updatedAt:        d.UpdatedAt,
	}, nil
}

func (o *Organization) ID() uint {
	return o.id
}

func (o *Organization) UID() string {
	return o.uid
}

func (o *Organization) Name() string {
	return o.name
}

func (o *Organization) NameKey() string {
	return o.nameKey
}

func (o *Organization) AdminID() uint {
	return o.adminID
}

func (o *Organization) RegistrationType() RegistrationType {
	return o.registrationType
}

func (o *Organization) IsActive() bool {
	return o.isActive
}

func (o *Organization) IsDeleted() bool {
	return o.deletedAt != nil
}

func (o *Organization) DeletedAt() *time.Time {
	return o.deletedAt
}

func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Organization) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsAdmin reports whether customerID administers the organization
func (o *Organization) IsAdmin(customerID uint) bool {
	return o.adminID == customerID
}

func (o *Organization) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("organization ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("organization ID cannot be zero")
	}
	o.id = id
	return nil
}

// Data exports the organization state for persistence
func (o *Organization) Data() OrganizationData {
	return OrganizationData{
		ID:               o.id,
		UID:              o.uid,
		Name:             o.name,
		NameKey:          o.nameKey,
		AdminID:          o.adminID,
		RegistrationType: o.registrationType,
		IsActive:         o.isActive,
		DeletedAt:        o.deletedAt,
		CreatedAt:        o.createdAt,
		UpdatedAt:        o.updatedAt,
	}
}
