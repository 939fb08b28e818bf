package entitlement

import (
	"context"

	"github.com/orris-inc/warden/internal/domain/entitlement"
	"github.com/orris-inc/warden/internal/domain/subscription"
)

type mockPlanRepository struct {
	subscription.PlanRepository
	GetByIDFunc func(ctx context.Context, id uint) (*subscription.Plan, error)
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

type mockEnrollmentRepository struct {
	GetFunc  func(ctx context.Context, customerID, planID uint) (*subscription.Enrollment, error)
	SaveFunc func(ctx context.Context, e *subscription.Enrollment) error
}

func (m *mockEnrollmentRepository) Get(ctx context.Context, customerID, planID uint) (*subscription.Enrollment, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, customerID, planID)
	}
	return nil, nil
}

func (m *mockEnrollmentRepository) Save(ctx context.Context, e *subscription.Enrollment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, e)
	}
	return nil
}

// memSlots is an in-memory quota_slots table enforcing the slot unique index
type memSlots struct {
	rows []*entitlement.QuotaSlot
	// stale makes UsedSlots report nothing, as a reader racing another
	// transaction would
	stale      bool
	ReserveErr error
}

func (m *memSlots) UsedSlots(ctx context.Context, customerID uint, featureCode, scope string) ([]int64, error) {
	if m.stale {
		return nil, nil
	}
	var used []int64
	for _, r := range m.rows {
		if r.CustomerID() == customerID && r.FeatureCode() == featureCode && r.Scope() == scope {
			used = append(used, r.Slot())
		}
	}
	return used, nil
}

func (m *memSlots) Reserve(ctx context.Context, slot *entitlement.QuotaSlot) error {
	if m.ReserveErr != nil {
		return m.ReserveErr
	}
	for _, r := range m.rows {
		if r.CustomerID() == slot.CustomerID() && r.FeatureCode() == slot.FeatureCode() &&
			r.Scope() == slot.Scope() && r.Slot() == slot.Slot() {
			return entitlement.ErrSlotTaken
		}
	}
	if err := slot.SetID(uint(len(m.rows) + 1)); err != nil {
		return err
	}
	m.rows = append(m.rows, slot)
	return nil
}

func (m *memSlots) ReleaseByResource(ctx context.Context, featureCode, scope, resourceRef string) (int64, error) {
	kept := m.rows[:0]
	var n int64
	for _, r := range m.rows {
		if r.FeatureCode() == featureCode && r.Scope() == scope && r.ResourceRef() == resourceRef {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, nil
}
