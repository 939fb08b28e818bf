package entitlement

import "context"

// QuotaSlotRepository defines persistence operations for quota slots
type QuotaSlotRepository interface {
	// UsedSlots lists the slots the customer holds for feature within scope
	UsedSlots(ctx context.Context, customerID uint, featureCode, scope string) ([]int64, error)
	// Reserve inserts the slot, returning ErrSlotTaken on a unique clash
	Reserve(ctx context.Context, slot *QuotaSlot) error
	// ReleaseByResource deletes the slot held by resourceRef and reports how many rows went
	ReleaseByResource(ctx context.Context, featureCode, scope, resourceRef string) (int64, error)
}
