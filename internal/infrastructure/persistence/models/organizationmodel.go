package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/shared/constants"
)

// OrganizationModel represents the database persistence model for tenants.
// NameKey stays unique across soft-deleted rows.
type OrganizationModel struct {
	ID               uint   `gorm:"primarykey"`
	UID              string `gorm:"uniqueIndex:idx_organizations_uid;not null;size:32"`
	Name             string `gorm:"not null;size:255"`
	NameKey          string `gorm:"uniqueIndex:idx_organizations_name_key;not null;size:255"`
	AdminID          uint   `gorm:"not null;index:idx_organizations_admin_id"`
	RegistrationType string `gorm:"not null;size:30;default:open"`
	IsActive         bool   `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index:idx_organizations_deleted_at"`
}

// TableName specifies the table name for GORM
func (OrganizationModel) TableName() string {
	return constants.TableOrganizations
}

// MembershipModel binds a customer to an organization. One row per pair,
// soft-deleted rows included.
type MembershipModel struct {
	ID             uint   `gorm:"primarykey"`
	UID            string `gorm:"uniqueIndex:idx_memberships_uid;not null;size:32"`
	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_memberships_pair,priority:1"`
	CustomerID     uint   `gorm:"not null;uniqueIndex:idx_memberships_pair,priority:2;index:idx_memberships_customer_id"`
	RoleID         uint   `gorm:"not null;index:idx_memberships_role_id"`
	IsActive       bool   `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index:idx_memberships_deleted_at"`
}

// TableName specifies the table name for GORM
func (MembershipModel) TableName() string {
	return constants.TableMemberships
}
