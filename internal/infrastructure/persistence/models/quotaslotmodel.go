package models

import (
	"time"

	"github.com/orris-inc/warden/internal/shared/constants"
)

// QuotaSlotModel holds one unit of a feature quota. The slot index refuses a
// reservation beyond the plan quantity even when two requests race the count.
type QuotaSlotModel struct {
	ID          uint   `gorm:"primarykey"`
	CustomerID  uint   `gorm:"not null;uniqueIndex:idx_quota_slots_slot,priority:1"`
	FeatureCode string `gorm:"not null;size:50;uniqueIndex:idx_quota_slots_slot,priority:2;uniqueIndex:idx_quota_slots_resource,priority:1"`
	Scope       string `gorm:"not null;size:40;uniqueIndex:idx_quota_slots_slot,priority:3;uniqueIndex:idx_quota_slots_resource,priority:2"`
	Slot        int64  `gorm:"not null;uniqueIndex:idx_quota_slots_slot,priority:4"`
	ResourceRef string `gorm:"not null;size:64;uniqueIndex:idx_quota_slots_resource,priority:3"`
	CreatedAt   time.Time
}

func (QuotaSlotModel) TableName() string {
	return constants.TableQuotaSlots
}
