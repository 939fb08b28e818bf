package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entitlementapp "github.com/orris-inc/warden/internal/application/entitlement"
	"github.com/orris-inc/warden/internal/domain/entitlement"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
)

func newTestPlan(t *testing.T, name string) *subscription.Plan {
	plan, err := subscription.NewPlan(subscription.PlanDetails{
		Name:         name,
		Description:  "test plan",
		Price:        1000,
		SalePrice:    800,
		ValidityDays: 30,
		Features: []subscription.PlanFeature{
			{FeatureCode: "create_organization", Quantity: 2},
			{FeatureCode: "add_member", Quantity: 10},
		},
	}, testNow)
	require.NoError(t, err)
	return plan
}

func TestPlanRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, testLogger())
	ctx := context.Background()

	plan := newTestPlan(t, "Pro")
	require.NoError(t, repo.Create(ctx, plan))
	assert.NotZero(t, plan.ID())

	t.Run("features are stored with the plan", func(t *testing.T) {
		found, err := repo.GetByUID(ctx, plan.UID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Pro", found.Name())
		assert.Equal(t, int64(800), found.SalePrice())
		assert.Equal(t, 30*24*time.Hour, found.Validity())

		f, ok := found.Feature("add_member")
		require.True(t, ok)
		assert.Equal(t, int64(10), f.Quantity)
		_, ok = found.Feature("add_chat")
		assert.False(t, ok)
	})

	t.Run("name clash", func(t *testing.T) {
		err := repo.Create(ctx, newTestPlan(t, "Pro"))
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "name", appErr.Field)

		exists, err := repo.ExistsByName(ctx, "Pro")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newTestPlan(t, "Basic")))
		plans, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Len(t, plans[1].Features(), 2)
	})

	t.Run("missing", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 999)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestPlanRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, testLogger())
	ctx := context.Background()

	plan := newTestPlan(t, "Pro")
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.Create(ctx, newTestPlan(t, "Basic")))

	t.Run("feature rows are replaced", func(t *testing.T) {
		require.NoError(t, plan.Update(subscription.PlanDetails{
			Name:         "Pro",
			ValidityDays: 90,
			Features:     []subscription.PlanFeature{{FeatureCode: "add_member", Quantity: 25}},
		}, testNow.Add(time.Hour)))
		require.NoError(t, repo.Update(ctx, plan))

		found, err := repo.GetByID(ctx, plan.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 90, found.ValidityDays())
		require.Len(t, found.Features(), 1)
		f, ok := found.Feature("add_member")
		require.True(t, ok)
		assert.Equal(t, int64(25), f.Quantity)
	})

	t.Run("name clash", func(t *testing.T) {
		require.NoError(t, plan.Update(subscription.PlanDetails{Name: "Basic", ValidityDays: 1}, testNow))

		err := repo.Update(ctx, plan)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "name", appErr.Field)
	})
}

func TestPlanRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	plans := NewPlanRepository(db, testLogger())
	customers := NewCustomerRepository(db, testLogger())
	enrollments := NewEnrollmentRepository(db, testLogger())
	ctx := context.Background()

	plan := newTestPlan(t, "Pro")
	require.NoError(t, plans.Create(ctx, plan))

	customer := createTestCustomer(t, customers, "alice")
	now := time.Now().UTC()
	e, err := subscription.NewEnrollment(customer.ID(), plan, now)
	require.NoError(t, err)
	require.NoError(t, enrollments.Save(ctx, e))
	customer.SetActivePlan(plan.ID(), now)
	require.NoError(t, customers.Update(ctx, customer))

	gate := entitlementapp.NewGate(plans, enrollments, NewQuotaSlotRepository(db), testLogger())
	_, err = gate.RequireFeature(ctx, customer, "add_member")
	require.NoError(t, err)

	require.NoError(t, plans.SoftDelete(ctx, plan.ID()))

	t.Run("lookups skip the plan", func(t *testing.T) {
		byID, err := plans.GetByID(ctx, plan.ID())
		require.NoError(t, err)
		assert.Nil(t, byID)

		byUID, err := plans.GetByUID(ctx, plan.UID())
		require.NoError(t, err)
		assert.Nil(t, byUID)

		all, err := plans.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("enrolled customer loses the subscription", func(t *testing.T) {
		reloaded, err := customers.GetByID(ctx, customer.ID())
		require.NoError(t, err)
		require.NotNil(t, reloaded.ActivePlanID())

		_, err = gate.RequireFeature(ctx, reloaded, "add_member")
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeNoSubscription, appErr.Type)
	})
}

func TestFeatureRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeatureRepository(db)
	ctx := context.Background()

	for _, code := range []string{"add_task", "add_chat"} {
		f, err := subscription.NewFeature(code, code, testNow)
		require.NoError(t, err)
		created, err := repo.CreateIfMissing(ctx, f)
		require.NoError(t, err)
		assert.True(t, created)
	}

	dup, err := subscription.NewFeature("add_task", "again", testNow)
	require.NoError(t, err)
	created, err := repo.CreateIfMissing(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	some, err := repo.GetByCodes(ctx, []string{"add_chat", "unknown"})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "add_chat", some[0].Code())
}

func TestEnrollmentRepository(t *testing.T) {
	db := setupTestDB(t)
	plans := NewPlanRepository(db, testLogger())
	repo := NewEnrollmentRepository(db, testLogger())
	ctx := context.Background()

	plan := newTestPlan(t, "Pro")
	require.NoError(t, plans.Create(ctx, plan))

	missing, err := repo.Get(ctx, 1, plan.ID())
	require.NoError(t, err)
	assert.Nil(t, missing)

	e, err := subscription.NewEnrollment(1, plan, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, e))
	assert.NotZero(t, e.ID())

	found, err := repo.Get(ctx, 1, plan.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.WithinDuration(t, testNow.Add(plan.Validity()), found.ExpiresAt(), time.Second)

	later := testNow.Add(10 * 24 * time.Hour)
	found.Extend(plan, later)
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.Get(ctx, 1, plan.ID())
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, found.ID(), reloaded.ID())
	assert.WithinDuration(t, found.ExpiresAt(), reloaded.ExpiresAt(), time.Second)
}

func TestQuotaSlotRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotaSlotRepository(db)
	ctx := context.Background()

	reserve := func(slot int64, ref string) error {
		q, err := entitlement.NewQuotaSlot(1, "add_member", entitlement.OrganizationScope(3), slot, ref, testNow)
		require.NoError(t, err)
		return repo.Reserve(ctx, q)
	}

	require.NoError(t, reserve(0, "mb_a"))
	require.NoError(t, reserve(1, "mb_b"))

	t.Run("slot number is held once", func(t *testing.T) {
		assert.ErrorIs(t, reserve(1, "mb_c"), entitlement.ErrSlotTaken)
	})

	t.Run("resource holds one slot", func(t *testing.T) {
		assert.ErrorIs(t, reserve(2, "mb_a"), entitlement.ErrSlotTaken)
	})

	t.Run("scopes are independent", func(t *testing.T) {
		q, err := entitlement.NewQuotaSlot(1, "add_member", entitlement.OrganizationScope(4), 0, "mb_a", testNow)
		require.NoError(t, err)
		assert.NoError(t, repo.Reserve(ctx, q))
	})

	used, err := repo.UsedSlots(ctx, 1, "add_member", entitlement.OrganizationScope(3))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1}, used)

	released, err := repo.ReleaseByResource(ctx, "add_member", entitlement.OrganizationScope(3), "mb_a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	used, err = repo.UsedSlots(ctx, 1, "add_member", entitlement.OrganizationScope(3))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, used)

	next, ok := entitlement.LowestFree(used, 2)
	require.True(t, ok)
	assert.Equal(t, int64(0), next)
	assert.NoError(t, reserve(next, "mb_d"))
}

func TestTransactionManager_RollsBack(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewQuotaSlotRepository(gdb)
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	boom := fmt.Errorf("boom")
	err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
		q, err := entitlement.NewQuotaSlot(1, "add_task", entitlement.ScopePlatform, 0, "task-1", testNow)
		require.NoError(t, err)
		require.NoError(t, repo.Reserve(ctx, q))

		// nested calls join the outer transaction
		return tm.RunInTransaction(ctx, func(ctx context.Context) error {
			used, err := repo.UsedSlots(ctx, 1, "add_task", entitlement.ScopePlatform)
			require.NoError(t, err)
			assert.Len(t, used, 1)
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	used, err := repo.UsedSlots(ctx, 1, "add_task", entitlement.ScopePlatform)
	require.NoError(t, err)
	assert.Empty(t, used)
}
