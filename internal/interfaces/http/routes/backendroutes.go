package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/interfaces/http/handlers"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
)

// BackendRouteConfig holds dependencies for the operator surface.
type BackendRouteConfig struct {
	AuthHandler          *handlers.AuthHandler
	UserHandler          *handlers.UserHandler
	RoleHandler          *handlers.RoleHandler
	PlanHandler          *handlers.PlanHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimiter
}

// SetupBackendRoutes configures the operator routes under /backend.
func SetupBackendRoutes(api *gin.RouterGroup, cfg *BackendRouteConfig) {
	backend := api.Group("/backend")
	{
		backend.POST("/login", cfg.RateLimiter.Limit(), cfg.AuthHandler.Login)
		backend.POST("/verify-email", cfg.AuthHandler.VerifyEmail)
		backend.POST("/password-reset", cfg.RateLimiter.Limit(), cfg.AuthHandler.RequestPasswordReset)
		backend.POST("/password-reset/confirm", cfg.AuthHandler.ResetPassword)
	}

	authed := backend.Group("")
	authed.Use(cfg.AuthMiddleware.RequireOperator())
	{
		authed.DELETE("/logout", cfg.AuthHandler.Logout)
		authed.DELETE("/logout-all", cfg.AuthHandler.LogoutAll)
		authed.GET("/profile", cfg.AuthHandler.Profile)

		authed.POST("/users", cfg.PermissionMiddleware.Require("create_user"), cfg.AuthHandler.Register)
		authed.GET("/users", cfg.PermissionMiddleware.Require("read_user"), cfg.UserHandler.ListOperators)
		authed.PATCH("/users/status", cfg.PermissionMiddleware.Require("update_user"), cfg.UserHandler.UpdateStatus)
		authed.GET("/customers", cfg.PermissionMiddleware.Require("read_user"), cfg.UserHandler.ListCustomers)
		authed.PATCH("/customers/status", cfg.PermissionMiddleware.Require("update_user"), cfg.UserHandler.UpdateCustomerStatus)

		authed.GET("/roles", cfg.PermissionMiddleware.Require("read_role"), cfg.RoleHandler.ListRoles)
		authed.POST("/roles", cfg.PermissionMiddleware.Require("create_role"), cfg.RoleHandler.CreateRole)
		authed.PUT("/roles/permissions", cfg.PermissionMiddleware.Require("update_permission"), cfg.RoleHandler.SetRolePermissions)
		authed.GET("/permissions", cfg.PermissionMiddleware.Require("read_permission"), cfg.RoleHandler.ListPermissions)

		authed.GET("/plans", cfg.PermissionMiddleware.Require("read_subscription"), cfg.PlanHandler.ListPlans)
		authed.POST("/plans", cfg.PermissionMiddleware.Require("create_subscription"), cfg.PlanHandler.CreatePlan)
		authed.GET("/plans/:uid", cfg.PermissionMiddleware.Require("read_subscription"), cfg.PlanHandler.GetPlan)
		authed.PUT("/plans/:uid", cfg.PermissionMiddleware.Require("update_subscription"), cfg.PlanHandler.UpdatePlan)
		authed.DELETE("/plans/:uid", cfg.PermissionMiddleware.Require("delete_subscription"), cfg.PlanHandler.DeletePlan)
		authed.GET("/features", cfg.PlanHandler.ListFeatures)
		authed.POST("/enrollments", cfg.PermissionMiddleware.Require("create_subscription"), cfg.PlanHandler.Enroll)
	}
}
