package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/catalog"
	"github.com/orris-inc/warden/internal/interfaces/http/handlers"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
)

// OrganizationRouteConfig holds dependencies for the tenant surface.
type OrganizationRouteConfig struct {
	OrganizationHandler   *handlers.OrganizationHandler
	MemberHandler         *handlers.MemberHandler
	AuthMiddleware        *middleware.AuthMiddleware
	TenantMiddleware      *middleware.TenantMiddleware
	EntitlementMiddleware *middleware.EntitlementMiddleware
}

// SetupOrganizationRoutes configures the organization routes. Every route
// except create, list and join targets the organization named by the
// orguid header. RequireOrgPermission with no codenames admits active members only.
func SetupOrganizationRoutes(api *gin.RouterGroup, cfg *OrganizationRouteConfig) {
	orgs := api.Group("/organization")
	orgs.Use(cfg.AuthMiddleware.RequireCustomer())
	{
		orgs.POST("", cfg.EntitlementMiddleware.RequireFeature(catalog.FeatureCreateOrganization), cfg.OrganizationHandler.CreateOrganization)
		orgs.GET("", cfg.OrganizationHandler.ListOrganizations)
		orgs.DELETE("", cfg.TenantMiddleware.Organization(), cfg.OrganizationHandler.DeleteOrganization)
		orgs.POST("/join", cfg.OrganizationHandler.Join)
	}

	tenant := orgs.Group("")
	tenant.Use(cfg.TenantMiddleware.RequireOrganization())
	{
		tenant.GET("/members", cfg.TenantMiddleware.RequireOrgPermission("read_user"), cfg.MemberHandler.ListMembers)
		tenant.GET("/members/active", cfg.TenantMiddleware.RequireOrgPermission(), cfg.MemberHandler.ListActiveMembers)
		tenant.POST("/members/activate", cfg.TenantMiddleware.RequireOrgPermission("update_user"), cfg.MemberHandler.ActivateMember)
		tenant.DELETE("/members", cfg.TenantMiddleware.RequireOrgPermission("delete_user"), cfg.MemberHandler.RemoveMember)
		tenant.PUT("/members/role", cfg.TenantMiddleware.RequireOrgPermission("update_role"), cfg.MemberHandler.AssignMemberRole)
		tenant.PUT("/members/permissions", cfg.TenantMiddleware.RequireOrgPermission("update_permission"), cfg.MemberHandler.SetMemberPermissions)

		tenant.GET("/roles", cfg.TenantMiddleware.RequireOrgPermission("read_role"), cfg.MemberHandler.ListRoles)
		tenant.POST("/roles", cfg.TenantMiddleware.RequireOrgPermission("create_role"), cfg.MemberHandler.CreateRole)
		tenant.PUT("/roles/permissions", cfg.TenantMiddleware.RequireOrgPermission("update_role"), cfg.MemberHandler.SetRolePermissions)
		tenant.GET("/permissions", cfg.TenantMiddleware.RequireOrgPermission(), cfg.MemberHandler.ListPermissions)
	}
}
