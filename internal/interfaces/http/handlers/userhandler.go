package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	principalapp "github.com/orris-inc/warden/internal/application/principal"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/interfaces/dto"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

type updateOperatorStatusUseCase interface {
	Execute(ctx context.Context, actor *principal.Operator, cmd principalapp.UpdateOperatorStatusCommand) (*principal.Operator, error)
}

type updateCustomerStatusUseCase interface {
	Execute(ctx context.Context, cmd principalapp.UpdateCustomerStatusCommand) (*principal.Customer, error)
}

type listUsersUseCase interface {
	Execute(ctx context.Context, q principalapp.ListUsersQuery) (*principalapp.ListUsersResult, error)
}

// UserHandler administers operator and customer accounts on the backend
type UserHandler struct {
	updateStatus         updateOperatorStatusUseCase
	updateCustomerStatus updateCustomerStatusUseCase
	listUsers            listUsersUseCase
	logger               logger.Interface
}

func NewUserHandler(
	updateStatus updateOperatorStatusUseCase,
	updateCustomerStatus updateCustomerStatusUseCase,
	listUsers listUsersUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		updateStatus:         updateStatus,
		updateCustomerStatus: updateCustomerStatus,
		listUsers:            listUsers,
		logger:               logger,
	}
}

// UpdateStatus changes the role and/or activation of another operator
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.CurrentOperator(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update user status", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	op, err := h.updateStatus.Execute(c.Request.Context(), actor, principalapp.UpdateOperatorStatusCommand{
		UserUID:  req.UserUID,
		RoleUID:  req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", dto.ToUserResponse(op))
}

// UpdateCustomerStatus suspends or reactivates a customer account
func (h *UserHandler) UpdateCustomerStatus(c *gin.Context) {
	var req dto.UpdateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update customer status", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	customer, err := h.updateCustomerStatus.Execute(c.Request.Context(), principalapp.UpdateCustomerStatusCommand{
		UserUID:  req.UserUID,
		IsActive: *req.IsActive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer updated successfully", dto.ToUserResponse(customer))
}

func (h *UserHandler) ListOperators(c *gin.Context) {
	h.list(c, principal.KindOperator)
}

func (h *UserHandler) ListCustomers(c *gin.Context) {
	h.list(c, principal.KindCustomer)
}

func (h *UserHandler) list(c *gin.Context, kind principal.Kind) {
	req, err := dto.ParseListUsersRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUsers.Execute(c.Request.Context(), principalapp.ListUsersQuery{
		Kind:     kind,
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.logger.Errorw("failed to list users", "kind", kind, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ToUserResponses(result.Users), result.Total, result.Page, result.PageSize)
}
