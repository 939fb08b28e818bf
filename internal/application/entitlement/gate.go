// Package entitlement enforces subscription features and their quotas.
package entitlement

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/entitlement"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// Gate reads the customer's enrollment from storage on every check and
// reserves quota slots so the unique slot index decides concurrent races.
type Gate struct {
	plans       subscription.PlanRepository
	enrollments subscription.EnrollmentRepository
	slots       entitlement.QuotaSlotRepository
	now         biztime.Clock
	logger      logger.Interface
}

func NewGate(
	plans subscription.PlanRepository,
	enrollments subscription.EnrollmentRepository,
	slots entitlement.QuotaSlotRepository,
	logger logger.Interface,
) *Gate {
	return &Gate{
		plans:       plans,
		enrollments: enrollments,
		slots:       slots,
		now:         biztime.NowUTC,
		logger:      logger,
	}
}

// RequireEnrollment returns the customer's active plan and its unexpired enrollment
func (g *Gate) RequireEnrollment(ctx context.Context, c *principal.Customer) (*subscription.Plan, *subscription.Enrollment, error) {
	planID := c.ActivePlanID()
	if planID == nil {
		return nil, nil, noSubscription()
	}

	plan, err := g.plans.GetByID(ctx, *planID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, nil, noSubscription()
	}

	enrollment, err := g.enrollments.Get(ctx, c.ID(), plan.ID())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, nil, noSubscription()
	}
	if enrollment.IsExpired(g.now()) {
		return nil, nil, errors.NewPlanExpiredError("your subscription has expired").
			Loc("subscription", plan.UID(), "expired")
	}

	return plan, enrollment, nil
}

// RequireFeature returns the plan row granting featureCode
func (g *Gate) RequireFeature(ctx context.Context, c *principal.Customer, featureCode string) (*subscription.PlanFeature, error) {
	plan, _, err := g.RequireEnrollment(ctx, c)
	if err != nil {
		return nil, err
	}

	feature, ok := plan.Feature(featureCode)
	if !ok {
		return nil, errors.NewFeatureUnavailableError("your plan does not include this feature").
			Loc("feature", featureCode, "unavailable")
	}
	return &feature, nil
}

// CheckQuota fails with QuotaExceeded when live already reaches the feature's quantity
func (g *Gate) CheckQuota(ctx context.Context, c *principal.Customer, featureCode string, live int64) (*subscription.PlanFeature, error) {
	feature, err := g.RequireFeature(ctx, c, featureCode)
	if err != nil {
		return nil, err
	}
	if live >= feature.Quantity {
		return nil, quotaExceeded(feature)
	}
	return feature, nil
}

// Reserve takes the lowest free slot of feature within scope for resourceRef
func (g *Gate) Reserve(ctx context.Context, c *principal.Customer, feature *subscription.PlanFeature, scope, resourceRef string) error {
	used, err := g.slots.UsedSlots(ctx, c.ID(), feature.FeatureCode, scope)
	if err != nil {
		return fmt.Errorf("failed to list quota slots: %w", err)
	}

	n, ok := entitlement.LowestFree(used, feature.Quantity)
	if !ok {
		return quotaExceeded(feature)
	}

	slot, err := entitlement.NewQuotaSlot(c.ID(), feature.FeatureCode, scope, n, resourceRef, g.now())
	if err != nil {
		return fmt.Errorf("failed to build quota slot: %w", err)
	}
	if err := g.slots.Reserve(ctx, slot); err != nil {
		if stderrors.Is(err, entitlement.ErrSlotTaken) {
			g.logger.Warnw("quota slot race lost",
				"customer_id", c.ID(),
				"feature", feature.FeatureCode,
				"scope", scope,
				"slot", n,
			)
			return quotaExceeded(feature)
		}
		return fmt.Errorf("failed to reserve quota slot: %w", err)
	}
	return nil
}

// Acquire checks the quota against live and reserves a slot for resourceRef
func (g *Gate) Acquire(ctx context.Context, c *principal.Customer, featureCode, scope, resourceRef string, live int64) error {
	feature, err := g.CheckQuota(ctx, c, featureCode, live)
	if err != nil {
		return err
	}
	return g.Reserve(ctx, c, feature, scope, resourceRef)
}

// Release frees the slot held by resourceRef. Releasing nothing is fine.
func (g *Gate) Release(ctx context.Context, featureCode, scope, resourceRef string) error {
	n, err := g.slots.ReleaseByResource(ctx, featureCode, scope, resourceRef)
	if err != nil {
		return fmt.Errorf("failed to release quota slot: %w", err)
	}
	if n > 0 {
		g.logger.Debugw("quota slot released", "feature", featureCode, "scope", scope, "resource", resourceRef)
	}
	return nil
}

func noSubscription() error {
	return errors.NewNoSubscriptionError("you do not have an active subscription").
		Loc("subscription", nil, "not_found")
}

func quotaExceeded(f *subscription.PlanFeature) error {
	return errors.NewQuotaExceededError("your plan quota for this feature is used up").
		Loc("feature", f.FeatureCode, fmt.Sprintf("max_%d", f.Quantity))
}
