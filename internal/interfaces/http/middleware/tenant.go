package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// TenantResolver resolves the organization a request targets and the
// caller's permissions inside it
type TenantResolver interface {
	Organization(ctx context.Context, orgUID string) (*organization.Organization, error)
	RequireOrganization(ctx context.Context, orgUID string) (*organization.Organization, error)
	PermissionsIn(ctx context.Context, p principal.Principal, org *organization.Organization) (permission.Set, error)
}

// TenantMiddleware selects the organization named by the tenant header
type TenantMiddleware struct {
	resolver TenantResolver
	header   string
	logger   logger.Interface
}

func NewTenantMiddleware(resolver TenantResolver, header string, logger logger.Interface) *TenantMiddleware {
	return &TenantMiddleware{
		resolver: resolver,
		header:   header,
		logger:   logger,
	}
}

// Organization only checks that the organization exists. The admin's
// subscription is not consulted, so an admin can still clean up after a
// plan lapses.
func (m *TenantMiddleware) Organization() gin.HandlerFunc {
	return func(c *gin.Context) {
		org, err := m.resolver.Organization(c.Request.Context(), m.orgUID(c))
		if err != nil {
			m.abort(c, err)
			return
		}
		c.Set(constants.ContextKeyOrganization, org)
		c.Next()
	}
}

// RequireOrganization checks the organization exists and that its admin
// holds a valid subscription
func (m *TenantMiddleware) RequireOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := m.load(c); err != nil {
			m.abort(c, err)
			return
		}
		c.Next()
	}
}

// RequireOrgPermission additionally requires every codename in the caller's
// organization permission set. The set is kept on the context for handlers.
func (m *TenantMiddleware) RequireOrgPermission(codenames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			utils.AbortWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
			return
		}

		org, err := m.load(c)
		if err != nil {
			m.abort(c, err)
			return
		}

		set, err := m.resolver.PermissionsIn(c.Request.Context(), p, org)
		if err != nil {
			m.abort(c, err)
			return
		}
		c.Set(constants.ContextKeyOrgPermissions, set)

		if !set.HasAll(codenames...) {
			m.logger.Warnw("organization permission denied",
				"principal_id", p.ID(),
				"organization_id", org.ID(),
				"required", codenames,
			)
			utils.AbortWithError(c, permissionDenied(codenames))
			return
		}

		c.Next()
	}
}

// load reuses an organization already placed on the context by an earlier
// handler in the chain
func (m *TenantMiddleware) load(c *gin.Context) (*organization.Organization, error) {
	if org, ok := CurrentOrganization(c); ok {
		return org, nil
	}
	org, err := m.resolver.RequireOrganization(c.Request.Context(), m.orgUID(c))
	if err != nil {
		return nil, err
	}
	c.Set(constants.ContextKeyOrganization, org)
	return org, nil
}

func (m *TenantMiddleware) orgUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(m.header))
}

func (m *TenantMiddleware) abort(c *gin.Context, err error) {
	if !errors.IsAppError(err) {
		m.logger.Errorw("failed to resolve organization", "orguid", m.orgUID(c), "error", err)
	}
	utils.AbortWithError(c, err)
}
