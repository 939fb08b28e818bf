package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/shared/constants"
)

// CurrentPrincipal returns the principal stored by AuthMiddleware
func CurrentPrincipal(c *gin.Context) (principal.Principal, bool) {
	v, ok := c.Get(constants.ContextKeyPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(principal.Principal)
	return p, ok
}

func CurrentOperator(c *gin.Context) (*principal.Operator, bool) {
	p, ok := CurrentPrincipal(c)
	if !ok {
		return nil, false
	}
	o, ok := p.(*principal.Operator)
	return o, ok
}

func CurrentCustomer(c *gin.Context) (*principal.Customer, bool) {
	p, ok := CurrentPrincipal(c)
	if !ok {
		return nil, false
	}
	cu, ok := p.(*principal.Customer)
	return cu, ok
}

// CurrentToken returns the token the request was authenticated with
func CurrentToken(c *gin.Context) (*token.AuthToken, bool) {
	v, ok := c.Get(constants.ContextKeyAuthToken)
	if !ok {
		return nil, false
	}
	t, ok := v.(*token.AuthToken)
	return t, ok
}

// CurrentOrganization returns the tenant selected by TenantMiddleware
func CurrentOrganization(c *gin.Context) (*organization.Organization, bool) {
	v, ok := c.Get(constants.ContextKeyOrganization)
	if !ok {
		return nil, false
	}
	org, ok := v.(*organization.Organization)
	return org, ok
}

func OrgPermissions(c *gin.Context) (permission.Set, bool) {
	v, ok := c.Get(constants.ContextKeyOrgPermissions)
	if !ok {
		return permission.Set{}, false
	}
	set, ok := v.(permission.Set)
	return set, ok
}

// RequiredFeature returns the plan feature row checked by EntitlementMiddleware
func RequiredFeature(c *gin.Context) (*subscription.PlanFeature, bool) {
	v, ok := c.Get(constants.ContextKeyRequiredFeature)
	if !ok {
		return nil, false
	}
	f, ok := v.(*subscription.PlanFeature)
	return f, ok
}
