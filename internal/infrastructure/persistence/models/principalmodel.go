package models

import (
	"time"

	"github.com/orris-inc/warden/internal/shared/constants"
)

// OperatorModel represents the database persistence model for operators.
// Deleted operators keep their row so username and email stay reserved.
type OperatorModel struct {
	ID                uint   `gorm:"primarykey"`
	UUID              string `gorm:"uniqueIndex:idx_operators_uuid;not null;size:36"`
	Username          string `gorm:"uniqueIndex:idx_operators_username;not null;size:150"`
	Email             string `gorm:"uniqueIndex:idx_operators_email;not null;size:255"`
	FirstName         string `gorm:"size:150"`
	LastName          string `gorm:"size:150"`
	PasswordHash      string `gorm:"not null;size:255"`
	RoleID            *uint  `gorm:"index:idx_operators_role_id"`
	IsActive          bool   `gorm:"not null"`
	EmailVerifiedAt   *time.Time
	VerificationToken *string    `gorm:"size:64;uniqueIndex:idx_operators_verification_token"`
	DeletedAt         *time.Time `gorm:"index:idx_operators_deleted_at"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (OperatorModel) TableName() string {
	return constants.TableOperators
}

// CustomerModel represents the database persistence model for customers
type CustomerModel struct {
	ID                uint   `gorm:"primarykey"`
	UUID              string `gorm:"uniqueIndex:idx_customers_uuid;not null;size:36"`
	Username          string `gorm:"uniqueIndex:idx_customers_username;not null;size:150"`
	Email             string `gorm:"uniqueIndex:idx_customers_email;not null;size:255"`
	FirstName         string `gorm:"size:150"`
	LastName          string `gorm:"size:150"`
	PasswordHash      string `gorm:"not null;size:255"`
	RoleID            *uint  `gorm:"index:idx_customers_role_id"`
	ActivePlanID      *uint  `gorm:"index:idx_customers_active_plan_id"`
	IsActive          bool   `gorm:"not null"`
	EmailVerifiedAt   *time.Time
	VerificationToken *string    `gorm:"size:64;uniqueIndex:idx_customers_verification_token"`
	DeletedAt         *time.Time `gorm:"index:idx_customers_deleted_at"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (CustomerModel) TableName() string {
	return constants.TableCustomers
}
