package models

import (
	"time"

	"github.com/orris-inc/warden/internal/shared/constants"
)

type PermissionModel struct {
	ID        uint   `gorm:"primarykey"`
	Codename  string `gorm:"not null;size:100;uniqueIndex:idx_permissions_scope_codename,priority:2"`
	Name      string `gorm:"not null;size:255"`
	Type      int    `gorm:"not null"`
	Scope     string `gorm:"not null;size:20;uniqueIndex:idx_permissions_scope_codename,priority:1"`
	CreatedAt time.Time
}

func (PermissionModel) TableName() string {
	return constants.TablePermissions
}

type RolePermissionModel struct {
	ID           uint `gorm:"primarykey"`
	RoleID       uint `gorm:"not null;uniqueIndex:idx_role_permissions_pair,priority:1"`
	PermissionID uint `gorm:"not null;uniqueIndex:idx_role_permissions_pair,priority:2;index:idx_role_permissions_permission_id"`
	CreatedAt    time.Time
}

func (RolePermissionModel) TableName() string {
	return constants.TableRolePermissions
}

// MemberPermissionModel grants a permission to one membership directly, on
// top of the membership role
type MemberPermissionModel struct {
	ID           uint `gorm:"primarykey"`
	MembershipID uint `gorm:"not null;uniqueIndex:idx_member_permissions_pair,priority:1"`
	PermissionID uint `gorm:"not null;uniqueIndex:idx_member_permissions_pair,priority:2"`
	CreatedAt    time.Time
}

func (MemberPermissionModel) TableName() string {
	return constants.TableMemberPermissions
}
