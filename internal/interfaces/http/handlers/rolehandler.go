package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/interfaces/dto"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

type rolePermissionReader interface {
	RolePermissions(ctx context.Context, roleID uint) (permission.Set, error)
}

type platformRoleService interface {
	rolePermissionReader
	CreateRole(ctx context.Context, creator principal.Principal, scope permission.Scope, name string, codenames []string) (*permission.Role, error)
	ListRoles(ctx context.Context, scope permission.Scope) ([]*permission.Role, error)
	SetPermissions(ctx context.Context, actor principal.Principal, roleUID string, codenames []string) error
	ListPermissions(ctx context.Context, scope permission.ScopeType) ([]*permission.Permission, error)
}

// RoleHandler manages platform roles and their permission sets
type RoleHandler struct {
	roles  platformRoleService
	logger logger.Interface
}

func NewRoleHandler(roles platformRoleService, logger logger.Interface) *RoleHandler {
	return &RoleHandler{
		roles:  roles,
		logger: logger,
	}
}

func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roles.ListRoles(c.Request.Context(), permission.PlatformScope())
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

func (h *RoleHandler) CreateRole(c *gin.Context) {
	actor, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
		return
	}

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create role", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := h.roles.CreateRole(c.Request.Context(), actor, permission.PlatformScope(), req.Name, req.Permissions)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToRoleResponse(role, permission.NewSet(req.Permissions...)), "Role created successfully")
}

func (h *RoleHandler) SetRolePermissions(c *gin.Context) {
	actor, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
		return
	}

	var req dto.SetRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set role permissions", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.roles.SetPermissions(c.Request.Context(), actor, req.Role, req.Permissions); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role permissions updated successfully", nil)
}

func (h *RoleHandler) ListPermissions(c *gin.Context) {
	perms, err := h.roles.ListPermissions(c.Request.Context(), permission.ScopePlatform)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToPermissionResponses(perms))
}

func roleResponses(ctx context.Context, reader rolePermissionReader, roles []*permission.Role) ([]dto.RoleResponse, error) {
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		set, err := reader.RolePermissions(ctx, role.ID())
		if err != nil {
			return nil, err
		}
		out = append(out, dto.ToRoleResponse(role, set))
	}
	return out, nil
}
