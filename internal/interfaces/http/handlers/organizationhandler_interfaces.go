package handlers

import (
	"context"

	"github.com/orris-inc/warden/internal/application/tenant"
	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
)

// Service interfaces for OrganizationHandler and MemberHandler.

type organizationService interface {
	CreateOrganization(ctx context.Context, c *principal.Customer, cmd tenant.CreateOrganizationCommand) (*organization.Organization, error)
	DeleteOrganization(ctx context.Context, c *principal.Customer, orgUID string) error
	ListOrganizations(ctx context.Context, c *principal.Customer) ([]*organization.Organization, error)
}

type membershipService interface {
	Join(ctx context.Context, c *principal.Customer, orgUID string) (*organization.Membership, error)
	ActivateMember(ctx context.Context, org *organization.Organization, memberUID string) (*organization.Membership, error)
	RemoveMember(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID string) error
	ListMembers(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error)
	ListActiveMembers(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error)
	AssignMemberRole(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID, roleUID string) (*organization.Membership, error)
	SetMemberPermissions(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID string, codenames []string) error
	CreateRole(ctx context.Context, actor *principal.Customer, org *organization.Organization, name string, codenames []string) (*permission.Role, error)
	ListRoles(ctx context.Context, org *organization.Organization) ([]*permission.Role, error)
	ListPermissions(ctx context.Context) ([]*permission.Permission, error)
	SetRolePermissions(ctx context.Context, actor *principal.Customer, org *organization.Organization, roleUID string, codenames []string) error
}
