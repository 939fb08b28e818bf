// Package entitlement models the quota slots that make storage the final
// arbiter of subscription feature limits.
package entitlement

import (
	"errors"
	"fmt"
	"time"
)

// ErrSlotTaken is returned by Reserve when the slot is already held
var ErrSlotTaken = errors.New("quota slot already taken")

// Scope values group slots. The platform scope counts per customer, an
// organization scope counts per tenant.
const ScopePlatform = "platform"

// OrganizationScope returns the slot scope of one organization
func OrganizationScope(orgID uint) string {
	return fmt.Sprintf("org:%d", orgID)
}

// QuotaSlot is one unit of a customer's feature quota held by a resource
type QuotaSlot struct {
	id          uint
	customerID  uint
	featureCode string
	scope       string
	slot        int64
	resourceRef string
	createdAt   time.Time
}

// NewQuotaSlot creates a slot reservation for resourceRef
func NewQuotaSlot(customerID uint, featureCode, scope string, slot int64, resourceRef string, now time.Time) (*QuotaSlot, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if featureCode == "" || scope == "" || resourceRef == "" {
		return nil, fmt.Errorf("feature code, scope and resource ref are required")
	}
	if slot < 0 {
		return nil, fmt.Errorf("slot cannot be negative")
	}
	return &QuotaSlot{
		customerID:  customerID,
		featureCode: featureCode,
		scope:       scope,
		slot:        slot,
		resourceRef: resourceRef,
		createdAt:   now,
	}, nil
}

// ReconstructQuotaSlot reconstructs a slot from persistence
func ReconstructQuotaSlot(id, customerID uint, featureCode, scope string, slot int64, resourceRef string, createdAt time.Time) *QuotaSlot {
	return &QuotaSlot{
		id:          id,
		customerID:  customerID,
		featureCode: featureCode,
		scope:       scope,
		slot:        slot,
		resourceRef: resourceRef,
		createdAt:   createdAt,
	}
}

func (q *QuotaSlot) ID() uint             { return q.id }
func (q *QuotaSlot) CustomerID() uint     { return q.customerID }
func (q *QuotaSlot) FeatureCode() string  { return q.featureCode }
func (q *QuotaSlot) Scope() string        { return q.scope }
func (q *QuotaSlot) Slot() int64          { return q.slot }
func (q *QuotaSlot) ResourceRef() string  { return q.resourceRef }
func (q *QuotaSlot) CreatedAt() time.Time { return q.createdAt }

func (q *QuotaSlot) SetID(id uint) error {
	if q.id != 0 {
		return fmt.Errorf("quota slot ID is already set")
	}
	q.id = id
	return nil
}

// LowestFree returns the smallest free slot below limit. Every slot held at
// or above limit is a leftover of a larger quota and lowers limit by one.
func LowestFree(used []int64, limit int64) (int64, bool) {
	taken := make(map[int64]struct{}, len(used))
	for _, u := range used {
		if u >= limit {
			limit--
			continue
		}
		taken[u] = struct{}{}
	}
	for s := int64(0); s < limit; s++ {
		if _, ok := taken[s]; !ok {
			return s, true
		}
	}
	return 0, false
}
