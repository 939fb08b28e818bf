package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	subscriptionapp "github.com/orris-inc/warden/internal/application/subscription"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/interfaces/dto"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

type planService interface {
	CreatePlan(ctx context.Context, d subscription.PlanDetails) (*subscription.Plan, error)
	ListPlans(ctx context.Context) ([]*subscription.Plan, error)
	GetPlan(ctx context.Context, planUID string) (*subscription.Plan, error)
	UpdatePlan(ctx context.Context, planUID string, d subscription.PlanDetails) (*subscription.Plan, error)
	DeletePlan(ctx context.Context, planUID string) error
	ListFeatures(ctx context.Context) ([]*subscription.Feature, error)
	Enroll(ctx context.Context, customerUID, planUID string) (*subscriptionapp.EnrollResult, error)
}

// PlanHandler exposes the subscription plan catalog and enrollments
type PlanHandler struct {
	plans  planService
	logger logger.Interface
}

func NewPlanHandler(plans planService, logger logger.Interface) *PlanHandler {
	return &PlanHandler{
		plans:  plans,
		logger: logger,
	}
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	plan, err := h.plans.CreatePlan(c.Request.Context(), req.ToPlanDetails())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToPlanResponse(plan), "Plan created successfully")
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.ListPlans(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToPlanResponses(plans))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.plans.GetPlan(c.Request.Context(), c.Param("uid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToPlanResponse(plan))
}

// UpdatePlan takes the same body as CreatePlan and replaces the whole plan,
// its feature rows included
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	plan, err := h.plans.UpdatePlan(c.Request.Context(), c.Param("uid"), req.ToPlanDetails())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", dto.ToPlanResponse(plan))
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.plans.DeletePlan(c.Request.Context(), c.Param("uid")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PlanHandler) ListFeatures(c *gin.Context) {
	features, err := h.plans.ListFeatures(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToFeatureResponses(features))
}

// Enroll subscribes a customer to a plan, extending the expiry when the
// customer is already on it
func (h *PlanHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for enroll", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.plans.Enroll(c.Request.Context(), req.UserUID, req.Plan)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.EnrollmentResponse{
		UserUID:   result.Customer.UUID(),
		Plan:      dto.ToPlanResponse(result.Plan),
		ExpiresAt: result.Enrollment.ExpiresAt(),
	}, "Customer enrolled successfully")
}
