package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/entitlement"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/db"
)

type QuotaSlotRepository struct {
	db *gorm.DB
}

func NewQuotaSlotRepository(db *gorm.DB) entitlement.QuotaSlotRepository {
	return &QuotaSlotRepository{db: db}
}

func (r *QuotaSlotRepository) UsedSlots(ctx context.Context, customerID uint, featureCode, scope string) ([]int64, error) {
	var slots []int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.QuotaSlotModel{}).
		Where("customer_id = ? AND feature_code = ? AND scope = ?", customerID, featureCode, scope).
		Order("slot ASC").
		Pluck("slot", &slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quota slots: %w", err)
	}
	return slots, nil
}

// Reserve inserts the slot. Both unique indexes map to ErrSlotTaken: either
// the slot number is held, or the resource already holds a slot.
func (r *QuotaSlotRepository) Reserve(ctx context.Context, slot *entitlement.QuotaSlot) error {
	model := &models.QuotaSlotModel{
		CustomerID:  slot.CustomerID(),
		FeatureCode: slot.FeatureCode(),
		Scope:       slot.Scope(),
		Slot:        slot.Slot(),
		ResourceRef: slot.ResourceRef(),
		CreatedAt:   slot.CreatedAt(),
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if _, dup := duplicateColumn(err); dup {
			return entitlement.ErrSlotTaken
		}
		return fmt.Errorf("failed to reserve quota slot: %w", err)
	}
	return slot.SetID(model.ID)
}

func (r *QuotaSlotRepository) ReleaseByResource(ctx context.Context, featureCode, scope, resourceRef string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("feature_code = ? AND scope = ? AND resource_ref = ?", featureCode, scope, resourceRef).
		Delete(&models.QuotaSlotModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to release quota slot: %w", result.Error)
	}
	return result.RowsAffected, nil
}
