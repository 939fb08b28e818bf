// Package tenant scopes customers to organizations: membership lookups,
// organization permissions, joining and the organization lifecycle.
package tenant

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/errors"
)

// Resolver answers who belongs to an organization and with which permissions.
// Every call reads storage.
type Resolver struct {
	orgs        organization.Repository
	memberships organization.MembershipRepository
	customers   principal.CustomerRepository
	perms       permission.PermissionRepository
	roles       RoleAdmin
	gate        EntitlementGate
}

func NewResolver(
	orgs organization.Repository,
	memberships organization.MembershipRepository,
	customers principal.CustomerRepository,
	perms permission.PermissionRepository,
	roles RoleAdmin,
	gate EntitlementGate,
) *Resolver {
	return &Resolver{
		orgs:        orgs,
		memberships: memberships,
		customers:   customers,
		perms:       perms,
		roles:       roles,
		gate:        gate,
	}
}

// Organization returns the live organization with uid orgUID
func (r *Resolver) Organization(ctx context.Context, orgUID string) (*organization.Organization, error) {
	if orgUID == "" {
		return nil, errors.NewNotExistError("organization does not exist").Loc("orguid", orgUID, "exist")
	}
	org, err := r.orgs.GetByUID(ctx, orgUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil || org.IsDeleted() {
		return nil, errors.NewNotExistError("organization does not exist").Loc("orguid", orgUID, "exist")
	}
	return org, nil
}

// RequireOrganization additionally checks that the organization admin holds
// a valid subscription
func (r *Resolver) RequireOrganization(ctx context.Context, orgUID string) (*organization.Organization, error) {
	org, err := r.Organization(ctx, orgUID)
	if err != nil {
		return nil, err
	}
	admin, err := r.Admin(ctx, org)
	if err != nil {
		return nil, err
	}
	if _, _, err := r.gate.RequireEnrollment(ctx, admin); err != nil {
		return nil, err
	}
	return org, nil
}

// Admin loads the customer administering org
func (r *Resolver) Admin(ctx context.Context, org *organization.Organization) (*principal.Customer, error) {
	admin, err := r.customers.GetByID(ctx, org.AdminID())
	if err != nil {
		return nil, fmt.Errorf("failed to get organization admin: %w", err)
	}
	if admin == nil || admin.IsDeleted() {
		return nil, errors.NewNoSubscriptionError("the organization has no active subscription").
			Loc("subscription", nil, "not_found")
	}
	return admin, nil
}

// Membership returns the principal's membership row in orgUID
func (r *Resolver) Membership(ctx context.Context, p principal.Principal, orgUID string) (*organization.Organization, *organization.Membership, error) {
	org, err := r.Organization(ctx, orgUID)
	if err != nil {
		return nil, nil, err
	}
	m, err := r.MembershipIn(ctx, p, org)
	if err != nil {
		return nil, nil, err
	}
	return org, m, nil
}

// MembershipIn is Membership for an already resolved organization
func (r *Resolver) MembershipIn(ctx context.Context, p principal.Principal, org *organization.Organization) (*organization.Membership, error) {
	if p.Kind() != principal.KindCustomer {
		return nil, notMember(org)
	}
	m, err := r.memberships.Get(ctx, org.ID(), p.ID(), false)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if m == nil || m.IsDeleted() {
		return nil, notMember(org)
	}
	return m, nil
}

// Permissions returns the customer's permission set in orgUID
func (r *Resolver) Permissions(ctx context.Context, c *principal.Customer, orgUID string) (permission.Set, error) {
	org, err := r.Organization(ctx, orgUID)
	if err != nil {
		return permission.Set{}, err
	}
	return r.PermissionsIn(ctx, c, org)
}

// PermissionsIn returns the permission set of p within org. The admin holds
// everything; a member holds their role's set plus direct grants.
func (r *Resolver) PermissionsIn(ctx context.Context, p principal.Principal, org *organization.Organization) (permission.Set, error) {
	if p.Kind() == principal.KindCustomer && org.IsAdmin(p.ID()) {
		return permission.All(), nil
	}

	m, err := r.MembershipIn(ctx, p, org)
	if err != nil {
		return permission.Set{}, err
	}
	if !m.IsActive() {
		return permission.Set{}, errors.NewForbiddenError("your membership is awaiting approval").
			Loc("orguid", org.UID(), "pending")
	}

	roleSet, err := r.roles.RolePermissions(ctx, m.RoleID())
	if err != nil {
		return permission.Set{}, err
	}
	direct, err := r.perms.MemberCodenames(ctx, m.ID())
	if err != nil {
		return permission.Set{}, fmt.Errorf("failed to get member permissions: %w", err)
	}
	return roleSet.Union(permission.NewSet(direct...)), nil
}

func notMember(org *organization.Organization) error {
	return errors.NewForbiddenError("you are not a member of this organization").
		Loc("orguid", org.UID(), "not_member")
}
