package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func testPlan(t *testing.T) *Plan {
	t.Helper()
	p, err := NewPlan(PlanDetails{
		Name:         "Team",
		Price:        1000,
		ValidityDays: 30,
		Features: []PlanFeature{
			{FeatureCode: "create_organization", Quantity: 1},
			{FeatureCode: "add_member", Quantity: 3},
		},
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, p.SetID(1))
	return p
}

func TestNewPlan(t *testing.T) {
	p := testPlan(t)

	f, ok := p.Feature("add_member")
	require.True(t, ok)
	assert.Equal(t, int64(3), f.Quantity)

	_, ok = p.Feature("add_chat")
	assert.False(t, ok)
	assert.Equal(t, 30*24*time.Hour, p.Validity())
}

func TestNewPlan_Validation(t *testing.T) {
	tests := []struct {
		name    string
		details PlanDetails
	}{
		{"missing name", PlanDetails{ValidityDays: 1}},
		{"zero validity", PlanDetails{Name: "x"}},
		{"negative price", PlanDetails{Name: "x", ValidityDays: 1, Price: -1}},
		{"duplicate feature", PlanDetails{Name: "x", ValidityDays: 1, Features: []PlanFeature{
			{FeatureCode: "add_member", Quantity: 1},
			{FeatureCode: "add_member", Quantity: 2},
		}}},
		{"negative quantity", PlanDetails{Name: "x", ValidityDays: 1, Features: []PlanFeature{
			{FeatureCode: "add_member", Quantity: -1},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(tt.details, testNow)
			assert.Error(t, err)
		})
	}
}

func TestPlan_Update(t *testing.T) {
	p := testPlan(t)
	uid := p.UID()
	later := testNow.Add(time.Hour)

	err := p.Update(PlanDetails{
		Name:         " Team Plus ",
		Price:        2000,
		ValidityDays: 60,
		Features:     []PlanFeature{{FeatureCode: "add_member", Quantity: 10}},
	}, later)

	require.NoError(t, err)
	assert.Equal(t, uid, p.UID())
	assert.Equal(t, "Team Plus", p.Name())
	assert.Equal(t, 60, p.ValidityDays())
	assert.Equal(t, later, p.UpdatedAt())
	assert.Len(t, p.Features(), 1)
	_, ok := p.Feature("create_organization")
	assert.False(t, ok)

	assert.Error(t, p.Update(PlanDetails{Name: "x"}, later))
	assert.Equal(t, "Team Plus", p.Name())
}

func TestEnrollment_Expiry(t *testing.T) {
	p := testPlan(t)
	e, err := NewEnrollment(7, p, testNow)
	require.NoError(t, err)

	expiry := testNow.Add(30 * 24 * time.Hour)
	assert.Equal(t, expiry, e.ExpiresAt())
	assert.False(t, e.IsExpired(expiry.Add(-time.Second)))
	assert.True(t, e.IsExpired(expiry))

	e.Extend(p, testNow.Add(24*time.Hour))
	assert.Equal(t, expiry.Add(30*24*time.Hour), e.ExpiresAt())

	late := expiry.Add(100 * 24 * time.Hour)
	e.Extend(p, late)
	assert.Equal(t, late.Add(30*24*time.Hour), e.ExpiresAt())
}
