package dto

import (
	"time"

	"github.com/orris-inc/warden/internal/domain/subscription"
)

type PlanFeatureInput struct {
	Code     string `json:"code" binding:"required"`
	Quantity int64  `json:"quantity" binding:"gte=0"`
}

type CreatePlanRequest struct {
	Name         string             `json:"name" binding:"required,max=100"`
	Description  string             `json:"description" binding:"max=1000"`
	Price        int64              `json:"price" binding:"gte=0"`
	SalePrice    int64              `json:"sale_price" binding:"gte=0"`
	ValidityDays int                `json:"validity_days" binding:"required,gt=0"`
	Features     []PlanFeatureInput `json:"features" binding:"dive"`
}

// EnrollRequest subscribes a customer to a plan on their behalf
type EnrollRequest struct {
	UserUID string `json:"user_uid" binding:"required"`
	Plan    string `json:"plan" binding:"required"`
}

type PlanFeatureResponse struct {
	Code     string `json:"code"`
	Quantity int64  `json:"quantity"`
}

type PlanResponse struct {
	UID          string                `json:"uid"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Price        int64                 `json:"price"`
	SalePrice    int64                 `json:"sale_price"`
	ValidityDays int                   `json:"validity_days"`
	Features     []PlanFeatureResponse `json:"features"`
	CreatedAt    time.Time             `json:"created_at"`
}

type FeatureResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type EnrollmentResponse struct {
	UserUID   string       `json:"user_uid"`
	Plan      PlanResponse `json:"plan"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (r *CreatePlanRequest) ToPlanDetails() subscription.PlanDetails {
	features := make([]subscription.PlanFeature, 0, len(r.Features))
	for _, f := range r.Features {
		features = append(features, subscription.PlanFeature{FeatureCode: f.Code, Quantity: f.Quantity})
	}
	return subscription.PlanDetails{
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		SalePrice:    r.SalePrice,
		ValidityDays: r.ValidityDays,
		Features:     features,
	}
}

func ToPlanResponse(p *subscription.Plan) PlanResponse {
	features := make([]PlanFeatureResponse, 0, len(p.Features()))
	for _, f := range p.Features() {
		features = append(features, PlanFeatureResponse{Code: f.FeatureCode, Quantity: f.Quantity})
	}
	return PlanResponse{
		UID:          p.UID(),
		Name:         p.Name(),
		Description:  p.Description(),
		Price:        p.Price(),
		SalePrice:    p.SalePrice(),
		ValidityDays: p.ValidityDays(),
		Features:     features,
		CreatedAt:    p.CreatedAt(),
	}
}

func ToPlanResponses(plans []*subscription.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, ToPlanResponse(p))
	}
	return out
}

func ToFeatureResponses(features []*subscription.Feature) []FeatureResponse {
	out := make([]FeatureResponse, 0, len(features))
	for _, f := range features {
		out = append(out, FeatureResponse{Code: f.Code(), Name: f.Name()})
	}
	return out
}
