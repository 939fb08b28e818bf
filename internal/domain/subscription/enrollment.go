package subscription

import (
	"fmt"
	"time"
)

// Enrollment records that a customer subscribed to a plan until expiresAt
type Enrollment struct {
	id         uint
	customerID uint
	planID     uint
	expiresAt  time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewEnrollment starts an enrollment at now for the plan's validity
func NewEnrollment(customerID uint, plan *Plan, now time.Time) (*Enrollment, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if plan == nil || plan.ID() == 0 {
		return nil, fmt.Errorf("plan is required")
	}
	return &Enrollment{
		customerID: customerID,
		planID:     plan.ID(),
		expiresAt:  now.Add(plan.Validity()),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructEnrollment reconstructs an enrollment from persistence
func ReconstructEnrollment(id, customerID, planID uint, expiresAt, createdAt, updatedAt time.Time) (*Enrollment, error) {
	if id == 0 {
		return nil, fmt.Errorf("enrollment ID cannot be zero")
	}
	return &Enrollment{
		id:         id,
		customerID: customerID,
		planID:     planID,
		expiresAt:  expiresAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (e *Enrollment) ID() uint             { return e.id }
func (e *Enrollment) CustomerID() uint     { return e.customerID }
func (e *Enrollment) PlanID() uint         { return e.planID }
func (e *Enrollment) ExpiresAt() time.Time { return e.expiresAt }
func (e *Enrollment) CreatedAt() time.Time { return e.createdAt }
func (e *Enrollment) UpdatedAt() time.Time { return e.updatedAt }

func (e *Enrollment) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("enrollment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("enrollment ID cannot be zero")
	}
	e.id = id
	return nil
}

// IsExpired reports whether the enrollment has lapsed. An enrollment is
// expired at its expiry instant.
func (e *Enrollment) IsExpired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// Extend adds another validity period. A lapsed enrollment restarts at now.
func (e *Enrollment) Extend(plan *Plan, now time.Time) {
	base := e.expiresAt
	if e.IsExpired(now) {
		base = now
	}
	e.expiresAt = base.Add(plan.Validity())
	e.updatedAt = now
}
