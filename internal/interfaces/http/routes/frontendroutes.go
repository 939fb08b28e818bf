package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/interfaces/http/handlers"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
)

// FrontendRouteConfig holds dependencies for the customer surface.
type FrontendRouteConfig struct {
	AuthHandler     *handlers.AuthHandler
	PlanHandler     *handlers.PlanHandler
	AuthMiddleware  *middleware.AuthMiddleware
	LoginLimiter    *middleware.RateLimiter
	RegisterLimiter *middleware.RateLimiter
}

// SetupFrontendRoutes configures the customer routes under /frontend.
func SetupFrontendRoutes(api *gin.RouterGroup, cfg *FrontendRouteConfig) {
	frontend := api.Group("/frontend")
	{
		frontend.POST("/register", cfg.RegisterLimiter.Limit(), cfg.AuthHandler.Register)
		frontend.POST("/verify-email", cfg.AuthHandler.VerifyEmail)
		frontend.POST("/login", cfg.LoginLimiter.Limit(), cfg.AuthHandler.Login)
		frontend.POST("/password-reset", cfg.RegisterLimiter.Limit(), cfg.AuthHandler.RequestPasswordReset)
		frontend.POST("/password-reset/confirm", cfg.AuthHandler.ResetPassword)
	}

	authed := frontend.Group("")
	authed.Use(cfg.AuthMiddleware.RequireCustomer())
	{
		authed.DELETE("/logout", cfg.AuthHandler.Logout)
		authed.DELETE("/logout-all", cfg.AuthHandler.LogoutAll)
		authed.GET("/profile", cfg.AuthHandler.Profile)

		authed.GET("/plans", cfg.PlanHandler.ListPlans)
		authed.GET("/plans/:uid", cfg.PlanHandler.GetPlan)
	}
}
