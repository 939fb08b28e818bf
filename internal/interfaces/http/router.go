package http

import (
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
	"github.com/orris-inc/warden/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	cfg := c.cfg

	c.engine.Use(middleware.Recovery(c.log.Named("recovery"), cfg.Auth.Token.Header))
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins, cfg.Auth.Token.Header, cfg.Tenant.Header))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)

	api := c.engine.Group("/api")

	routes.SetupBackendRoutes(api, &routes.BackendRouteConfig{
		AuthHandler:          c.hdlrs.backendAuthHandler,
		UserHandler:          c.hdlrs.userHandler,
		RoleHandler:          c.hdlrs.roleHandler,
		PlanHandler:          c.hdlrs.planHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		RateLimiter:          c.loginLimiter,
	})

	routes.SetupFrontendRoutes(api, &routes.FrontendRouteConfig{
		AuthHandler:     c.hdlrs.frontendAuthHandler,
		PlanHandler:     c.hdlrs.planHandler,
		AuthMiddleware:  c.authMiddleware,
		LoginLimiter:    c.loginLimiter,
		RegisterLimiter: c.registerLimiter,
	})

	routes.SetupOrganizationRoutes(api, &routes.OrganizationRouteConfig{
		OrganizationHandler:   c.hdlrs.organizationHandler,
		MemberHandler:         c.hdlrs.memberHandler,
		AuthMiddleware:        c.authMiddleware,
		TenantMiddleware:      c.tenantMiddleware,
		EntitlementMiddleware: c.entitlementMiddleware,
	})
}
