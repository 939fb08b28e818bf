package models

import (
	"time"

	"github.com/orris-inc/warden/internal/shared/constants"
)

// RoleModel stores platform and organization roles. ScopeKey is "platform"
// or "org:<id>" so one unique index covers both scopes.
type RoleModel struct {
	ID             uint   `gorm:"primarykey"`
	UID            string `gorm:"uniqueIndex:idx_roles_uid;not null;size:32"`
	Name           string `gorm:"not null;size:100;uniqueIndex:idx_roles_scope_name,priority:2"`
	Kind           string `gorm:"not null;size:20;default:standard"`
	ScopeType      string `gorm:"not null;size:20"`
	ScopeKey       string `gorm:"not null;size:40;uniqueIndex:idx_roles_scope_name,priority:1"`
	OrganizationID *uint  `gorm:"index:idx_roles_organization_id"`
	CreatedBy      *uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (RoleModel) TableName() string {
	return constants.TableRoles
}
