package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/interfaces/dto"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// MemberHandler serves the member and role endpoints of the organization
// selected by TenantMiddleware
type MemberHandler struct {
	members membershipService
	roles   rolePermissionReader
	logger  logger.Interface
}

func NewMemberHandler(members membershipService, roles rolePermissionReader, logger logger.Interface) *MemberHandler {
	return &MemberHandler{
		members: members,
		roles:   roles,
		logger:  logger,
	}
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	h.listMembers(c, h.members.ListMembers)
}

func (h *MemberHandler) ListActiveMembers(c *gin.Context) {
	h.listMembers(c, h.members.ListActiveMembers)
}

type memberLister func(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error)

func (h *MemberHandler) listMembers(c *gin.Context, list memberLister) {
	_, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	members, total, err := list(c.Request.Context(), org, p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ToMembershipResponses(members), total, p.Page, p.PageSize)
}

// ActivateMember approves a pending membership
func (h *MemberHandler) ActivateMember(c *gin.Context) {
	_, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	m, err := h.members.ActivateMember(c.Request.Context(), org, req.MemberUID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member activated successfully", dto.ToMembershipResponse(m))
}

func (h *MemberHandler) RemoveMember(c *gin.Context) {
	actor, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.members.RemoveMember(c.Request.Context(), actor, org, req.MemberUID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *MemberHandler) AssignMemberRole(c *gin.Context) {
	actor, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	var req dto.AssignMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for assign member role", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	m, err := h.members.AssignMemberRole(c.Request.Context(), actor, org, req.MemberUID, req.Role)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member role updated successfully", dto.ToMembershipResponse(m))
}

// SetMemberPermissions replaces the permissions of the member's own role
func (h *MemberHandler) SetMemberPermissions(c *gin.Context) {
	actor, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	var req dto.SetMemberPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set member permissions", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.members.SetMemberPermissions(c.Request.Context(), actor, org, req.MemberUID, req.Permissions); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member permissions updated successfully", nil)
}

func (h *MemberHandler) ListRoles(c *gin.Context) {
	_, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	roles, err := h.members.ListRoles(c.Request.Context(), org)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := roleResponses(c.Request.Context(), h.roles, roles)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *MemberHandler) CreateRole(c *gin.Context) {
	actor, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create organization role", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := h.members.CreateRole(c.Request.Context(), actor, org, req.Name, req.Permissions)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToRoleResponse(role, permission.NewSet(req.Permissions...)), "Role created successfully")
}

func (h *MemberHandler) SetRolePermissions(c *gin.Context) {
	actor, org, ok := currentCustomerIn(c)
	if !ok {
		return
	}

	var req dto.SetRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.members.SetRolePermissions(c.Request.Context(), actor, org, req.Role, req.Permissions); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role permissions updated successfully", nil)
}

func (h *MemberHandler) ListPermissions(c *gin.Context) {
	perms, err := h.members.ListPermissions(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToPermissionResponses(perms))
}
