package http

import (
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// Operator surface
	backendAuthHandler *handlers.AuthHandler
	userHandler        *handlers.UserHandler
	roleHandler        *handlers.RoleHandler

	// Customer surface
	frontendAuthHandler *handlers.AuthHandler

	// Shared between both surfaces
	planHandler *handlers.PlanHandler

	// Tenants
	organizationHandler *handlers.OrganizationHandler
	memberHandler       *handlers.MemberHandler

	healthHandler *handlers.HealthHandler
}

// ============================================================
// Section 4: Handlers
// ============================================================

func (c *Container) initHandlers() error {
	s := c.svcs
	log := c.log

	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	c.hdlrs = &allHandlers{
		backendAuthHandler: handlers.NewAuthHandler(
			principal.KindOperator, s.loginUC, s.registerUC, s.verifyEmailUC, s.passwordResetUC, s.tokenStore, s.permissions, log.Named("backend"),
		),
		userHandler: handlers.NewUserHandler(s.updateStatusUC, s.updateCustomerStatusUC, s.listUsersUC, log.Named("users")),
		roleHandler: handlers.NewRoleHandler(s.permissions, log.Named("roles")),

		frontendAuthHandler: handlers.NewAuthHandler(
			principal.KindCustomer, s.loginUC, s.registerUC, s.verifyEmailUC, s.passwordResetUC, s.tokenStore, s.permissions, log.Named("frontend"),
		),

		planHandler: handlers.NewPlanHandler(s.subscriptions, log.Named("plans")),

		organizationHandler: handlers.NewOrganizationHandler(s.organizations, s.memberships, log.Named("organizations")),
		memberHandler:       handlers.NewMemberHandler(s.memberships, s.permissions, log.Named("members")),

		healthHandler: handlers.NewHealthHandler(sqlDB, c.version, log),
	}
	return nil
}
