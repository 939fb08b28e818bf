// Package subscription models plans, their quota-carrying features and the
// enrollments that bind customers to plans.
package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/warden/internal/shared/id"
)

// PlanFeature grants a feature with a quota. Quantity is the ceiling on live uses.
type PlanFeature struct {
	FeatureCode string
	Quantity    int64
}

// PlanDetails describes a plan about to be created
type PlanDetails struct {
	Name         string
	Description  string
	Price        int64
	SalePrice    int64
	ValidityDays int
	Features     []PlanFeature
}

// Plan is a purchasable bundle of features
type Plan struct {
	id           uint
	uid          string
	name         string
	description  string
	price        int64
	salePrice    int64
	validityDays int
	features     []PlanFeature
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlan validates details and creates a plan with a fresh uid
func NewPlan(d PlanDetails, now time.Time) (*Plan, error) {
	if err := validateDetails(&d); err != nil {
		return nil, err
	}

	uid, err := id.New(id.PrefixPlan)
	if err != nil {
		return nil, err
	}

	return &Plan{
		uid:          uid,
		name:         d.Name,
		description:  d.Description,
		price:        d.Price,
		salePrice:    d.SalePrice,
		validityDays: d.ValidityDays,
		features:     append([]PlanFeature(nil), d.Features...),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// validateDetails checks d and trims its text fields in place
func validateDetails(d *PlanDetails) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	if d.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if d.ValidityDays < 1 {
		return fmt.Errorf("validity must be at least one day")
	}
	if d.Price < 0 || d.SalePrice < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	seen := make(map[string]struct{}, len(d.Features))
	for _, f := range d.Features {
		if f.Quantity < 0 {
			return fmt.Errorf("feature %s has negative quantity", f.FeatureCode)
		}
		if _, dup := seen[f.FeatureCode]; dup {
			return fmt.Errorf("feature %s listed twice", f.FeatureCode)
		}
		seen[f.FeatureCode] = struct{}{}
	}
	return nil
}

// ReconstructPlan reconstructs a plan from persistence
func ReconstructPlan(id uint, uid string, d PlanDetails, createdAt, updatedAt time.Time) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	return &Plan{
		id:           id,
		uid:          uid,
		name:         d.Name,
		description:  d.Description,
		price:        d.Price,
		salePrice:    d.SalePrice,
		validityDays: d.ValidityDays,
		features:     d.Features,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) ID() uint {
	return p.id
}

func (p *Plan) UID() string {
	return p.uid
}

func (p *Plan) Name() string {
	return p.name
}

func (p *Plan) Description() string {
	return p.description
}

func (p *Plan) Price() int64 {
	return p.price
}

func (p *Plan) SalePrice() int64 {
	return p.salePrice
}

func (p *Plan) ValidityDays() int {
	return p.validityDays
}

// Validity returns the enrollment period granted by the plan
func (p *Plan) Validity() time.Duration {
	return time.Duration(p.validityDays) * 24 * time.Hour
}

// Features returns a copy of the plan's feature rows
func (p *Plan) Features() []PlanFeature {
	return append([]PlanFeature(nil), p.features...)
}

// Feature returns the row for code
func (p *Plan) Feature(code string) (PlanFeature, bool) {
	for _, f := range p.features {
		if f.FeatureCode == code {
			return f, true
		}
	}
	return PlanFeature{}, false
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

// Update replaces every detail of the plan, the feature rows included. The
// uid is kept. Enrollments keep their expiry.
func (p *Plan) Update(d PlanDetails, now time.Time) error {
	if err := validateDetails(&d); err != nil {
		return err
	}
	p.name = d.Name
	p.description = d.Description
	p.price = d.Price
	p.salePrice = d.SalePrice
	p.validityDays = d.ValidityDays
	p.features = append([]PlanFeature(nil), d.Features...)
	p.updatedAt = now
	return nil
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}
