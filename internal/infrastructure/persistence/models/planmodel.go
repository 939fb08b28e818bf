package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/shared/constants"
)

// PlanModel represents the database persistence model for subscription plans
type PlanModel struct {
	ID           uint   `gorm:"primarykey"`
	UID          string `gorm:"uniqueIndex:idx_plans_uid;not null;size:32"`
	Name         string `gorm:"uniqueIndex:idx_plans_name;not null;size:100"`
	Description  string `gorm:"size:500"`
	Price        int64  `gorm:"not null;default:0"`
	SalePrice    int64  `gorm:"not null;default:0"`
	ValidityDays int    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index:idx_plans_deleted_at"`

	Features []PlanFeatureModel `gorm:"foreignKey:PlanID"`
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}

// PlanFeatureModel is the quota a plan grants for one feature
type PlanFeatureModel struct {
	ID          uint   `gorm:"primarykey"`
	PlanID      uint   `gorm:"not null;uniqueIndex:idx_plan_features_pair,priority:1"`
	FeatureCode string `gorm:"not null;size:50;uniqueIndex:idx_plan_features_pair,priority:2"`
	Quantity    int64  `gorm:"not null;default:0"`
}

func (PlanFeatureModel) TableName() string {
	return constants.TablePlanFeatures
}

type FeatureModel struct {
	ID        uint   `gorm:"primarykey"`
	Code      string `gorm:"uniqueIndex:idx_features_code;not null;size:50"`
	Name      string `gorm:"not null;size:255"`
	CreatedAt time.Time
}

func (FeatureModel) TableName() string {
	return constants.TableFeatures
}

// EnrollmentModel records a customer's subscription to one plan
type EnrollmentModel struct {
	ID         uint      `gorm:"primarykey"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_enrollments_pair,priority:1"`
	PlanID     uint      `gorm:"not null;uniqueIndex:idx_enrollments_pair,priority:2"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EnrollmentModel) TableName() string {
	return constants.TableEnrollments
}
