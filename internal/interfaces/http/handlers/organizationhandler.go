package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/application/tenant"
	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/interfaces/dto"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

type OrganizationHandler struct {
	orgs    organizationService
	members membershipService
	logger  logger.Interface
}

func NewOrganizationHandler(orgs organizationService, members membershipService, logger logger.Interface) *OrganizationHandler {
	return &OrganizationHandler{
		orgs:    orgs,
		members: members,
		logger:  logger,
	}
}

// CreateOrganization creates an organization administered by the caller.
// The create_organization quota is enforced by the service.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create organization", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	org, err := h.orgs.CreateOrganization(c.Request.Context(), customer, tenant.CreateOrganizationCommand{
		Name:             req.OrgName,
		RegistrationType: req.RegistrationType,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToOrganizationResponse(org, customer.ID()), "Organization created successfully")
}

// DeleteOrganization deletes the organization selected by the orguid header
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	customer, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	if err := h.orgs.DeleteOrganization(c.Request.Context(), customer, org.UID()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	orgs, err := h.orgs.ListOrganizations(c.Request.Context(), customer)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToOrganizationResponses(orgs, customer.ID()))
}

// Join requests membership of the organization named in the body. The
// membership starts inactive when the organization requires approval.
func (h *OrganizationHandler) Join(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var req dto.JoinOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	m, err := h.members.Join(c.Request.Context(), customer, req.OrgUID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := "Joined organization successfully"
	if !m.IsActive() {
		msg = "Membership request submitted, waiting for approval"
	}
	utils.CreatedResponse(c, dto.ToMembershipResponse(m), msg)
}

func currentCustomer(c *gin.Context) (*principal.Customer, bool) {
	customer, ok := middleware.CurrentCustomer(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
		return nil, false
	}
	return customer, true
}

func currentCustomerIn(c *gin.Context) (*principal.Customer, *organization.Organization, bool) {
	customer, ok := currentCustomer(c)
	if !ok {
		return nil, nil, false
	}
	org, ok := middleware.CurrentOrganization(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("organization is required").Loc("orguid", nil, "missing"))
		return nil, nil, false
	}
	return customer, org, true
}
