// Package subscription administers plans and customer enrollments.
package subscription

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type Service struct {
	plans       subscription.PlanRepository
	features    subscription.FeatureRepository
	enrollments subscription.EnrollmentRepository
	customers   principal.CustomerRepository
	tx          db.Transactor
	now         biztime.Clock
	logger      logger.Interface
}

func NewService(
	plans subscription.PlanRepository,
	features subscription.FeatureRepository,
	enrollments subscription.EnrollmentRepository,
	customers principal.CustomerRepository,
	tx db.Transactor,
	logger logger.Interface,
) *Service {
	return &Service{
		plans:       plans,
		features:    features,
		enrollments: enrollments,
		customers:   customers,
		tx:          tx,
		now:         biztime.NowUTC,
		logger:      logger,
	}
}

// CreatePlan validates and stores a new plan. Every feature code must be
// present in the features table.
func (s *Service) CreatePlan(ctx context.Context, d subscription.PlanDetails) (*subscription.Plan, error) {
	if err := s.requireFeatures(ctx, d.Features); err != nil {
		return nil, err
	}

	plan, err := subscription.NewPlan(d, s.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).Loc("plan", d.Name, "invalid")
	}

	exists, err := s.plans.ExistsByName(ctx, plan.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to check plan name: %w", err)
	}
	if exists {
		return nil, errors.NewAlreadyExistsError("a plan with this name already exists").Loc("name", plan.Name(), "unique")
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		s.logger.Errorw("failed to create plan", "name", plan.Name(), "error", err)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	s.logger.Infow("plan created", "plan", plan.UID(), "name", plan.Name())
	return plan, nil
}

// UpdatePlan replaces the plan's details and feature rows in one transaction.
// Customers enrolled on the plan see the new quotas on their next request.
func (s *Service) UpdatePlan(ctx context.Context, planUID string, d subscription.PlanDetails) (*subscription.Plan, error) {
	plan, err := s.GetPlan(ctx, planUID)
	if err != nil {
		return nil, err
	}
	if err := s.requireFeatures(ctx, d.Features); err != nil {
		return nil, err
	}

	oldName := plan.Name()
	if err := plan.Update(d, s.now()); err != nil {
		return nil, errors.NewValidationError(err.Error()).Loc("plan", d.Name, "invalid")
	}
	if plan.Name() != oldName {
		exists, err := s.plans.ExistsByName(ctx, plan.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to check plan name: %w", err)
		}
		if exists {
			return nil, errors.NewAlreadyExistsError("a plan with this name already exists").Loc("name", plan.Name(), "unique")
		}
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.plans.Update(ctx, plan)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		s.logger.Errorw("failed to update plan", "plan", planUID, "error", err)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	s.logger.Infow("plan updated", "plan", plan.UID(), "name", plan.Name(), "features", len(plan.Features()))
	return plan, nil
}

// DeletePlan soft deletes the plan. Customers whose active plan it was lose
// their subscription.
func (s *Service) DeletePlan(ctx context.Context, planUID string) error {
	plan, err := s.GetPlan(ctx, planUID)
	if err != nil {
		return err
	}

	if err := s.plans.SoftDelete(ctx, plan.ID()); err != nil {
		s.logger.Errorw("failed to delete plan", "plan", planUID, "error", err)
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	s.logger.Infow("plan deleted", "plan", plan.UID(), "name", plan.Name())
	return nil
}

func (s *Service) requireFeatures(ctx context.Context, rows []subscription.PlanFeature) error {
	if len(rows) == 0 {
		return nil
	}
	codes := make([]string, 0, len(rows))
	for _, f := range rows {
		codes = append(codes, f.FeatureCode)
	}

	stored, err := s.features.GetByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("failed to get features: %w", err)
	}
	known := make(map[string]struct{}, len(stored))
	for _, f := range stored {
		known[f.Code()] = struct{}{}
	}
	for _, c := range codes {
		if _, ok := known[c]; !ok {
			return errors.NewNotExistError("feature does not exist").Loc("features", c, "exist")
		}
	}
	return nil
}

func (s *Service) ListPlans(ctx context.Context) ([]*subscription.Plan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

func (s *Service) GetPlan(ctx context.Context, planUID string) (*subscription.Plan, error) {
	plan, err := s.plans.GetByUID(ctx, planUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotExistError("plan does not exist").Loc("plan", planUID, "exist")
	}
	return plan, nil
}

func (s *Service) ListFeatures(ctx context.Context) ([]*subscription.Feature, error) {
	features, err := s.features.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	return features, nil
}

// EnrollResult is the enrollment after Enroll together with the customer it belongs to
type EnrollResult struct {
	Enrollment *subscription.Enrollment
	Plan       *subscription.Plan
	Customer   *principal.Customer
}

// Enroll subscribes a customer to a plan and makes it their active plan.
// Re-enrolling on the same plan extends the expiry in place.
func (s *Service) Enroll(ctx context.Context, customerUID, planUID string) (*EnrollResult, error) {
	customer, err := s.customers.GetByUUID(ctx, customerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil || customer.IsDeleted() {
		return nil, errors.NewNotExistError("user does not exist").Loc("user_uid", customerUID, "exist")
	}

	plan, err := s.GetPlan(ctx, planUID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var enrollment *subscription.Enrollment
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.enrollments.Get(ctx, customer.ID(), plan.ID())
		if err != nil {
			return fmt.Errorf("failed to get enrollment: %w", err)
		}
		if existing != nil {
			existing.Extend(plan, now)
			enrollment = existing
		} else {
			enrollment, err = subscription.NewEnrollment(customer.ID(), plan, now)
			if err != nil {
				return err
			}
		}
		if err := s.enrollments.Save(ctx, enrollment); err != nil {
			return fmt.Errorf("failed to save enrollment: %w", err)
		}

		customer.SetActivePlan(plan.ID(), now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return fmt.Errorf("failed to set active plan: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("failed to enroll customer", "customer", customerUID, "plan", planUID, "error", err)
		return nil, err
	}

	s.logger.Infow("customer enrolled",
		"customer", customer.UUID(),
		"plan", plan.UID(),
		"expires_at", enrollment.ExpiresAt(),
	)
	return &EnrollResult{Enrollment: enrollment, Plan: plan, Customer: customer}, nil
}
