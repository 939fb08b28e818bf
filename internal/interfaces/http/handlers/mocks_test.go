package handlers

import (
	"context"

	"github.com/orris-inc/warden/internal/application/auth"
	principalapp "github.com/orris-inc/warden/internal/application/principal"
	subscriptionapp "github.com/orris-inc/warden/internal/application/subscription"
	"github.com/orris-inc/warden/internal/application/tenant"
	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/domain/token"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockLoginUC struct {
	ExecuteFunc func(ctx context.Context, cmd auth.LoginCommand) (*auth.LoginResult, error)
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd auth.LoginCommand) (*auth.LoginResult, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockRegisterUC struct {
	ExecuteFunc func(ctx context.Context, cmd principalapp.RegisterCommand) (principal.Principal, error)
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd principalapp.RegisterCommand) (principal.Principal, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockVerifyEmailUC struct {
	ExecuteFunc func(ctx context.Context, cmd principalapp.VerifyEmailCommand) (principal.Principal, error)
}

func (m *mockVerifyEmailUC) Execute(ctx context.Context, cmd principalapp.VerifyEmailCommand) (principal.Principal, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockPasswordResetUC struct {
	RequestPasswordResetFunc func(ctx context.Context, cmd principalapp.RequestPasswordResetCommand) error
	ResetPasswordFunc        func(ctx context.Context, cmd principalapp.ResetPasswordCommand) (principal.Principal, error)
}

func (m *mockPasswordResetUC) RequestPasswordReset(ctx context.Context, cmd principalapp.RequestPasswordResetCommand) error {
	return m.RequestPasswordResetFunc(ctx, cmd)
}

func (m *mockPasswordResetUC) ResetPassword(ctx context.Context, cmd principalapp.ResetPasswordCommand) (principal.Principal, error) {
	return m.ResetPasswordFunc(ctx, cmd)
}

type mockSessionStore struct {
	RevokeFunc    func(ctx context.Context, tok *token.AuthToken) error
	RevokeAllFunc func(ctx context.Context, p principal.Principal) error
}

func (m *mockSessionStore) Revoke(ctx context.Context, tok *token.AuthToken) error {
	return m.RevokeFunc(ctx, tok)
}

func (m *mockSessionStore) RevokeAll(ctx context.Context, p principal.Principal) error {
	return m.RevokeAllFunc(ctx, p)
}

type mockPermissionReader struct {
	EffectivePermissionsFunc func(ctx context.Context, p principal.Principal) (permission.Set, error)
	RolePermissionsFunc      func(ctx context.Context, roleID uint) (permission.Set, error)
}

func (m *mockPermissionReader) EffectivePermissions(ctx context.Context, p principal.Principal) (permission.Set, error) {
	return m.EffectivePermissionsFunc(ctx, p)
}

func (m *mockPermissionReader) RolePermissions(ctx context.Context, roleID uint) (permission.Set, error) {
	return m.RolePermissionsFunc(ctx, roleID)
}

type mockUpdateStatusUC struct {
	ExecuteFunc func(ctx context.Context, actor *principal.Operator, cmd principalapp.UpdateOperatorStatusCommand) (*principal.Operator, error)
}

func (m *mockUpdateStatusUC) Execute(ctx context.Context, actor *principal.Operator, cmd principalapp.UpdateOperatorStatusCommand) (*principal.Operator, error) {
	return m.ExecuteFunc(ctx, actor, cmd)
}

type mockUpdateCustomerStatusUC struct {
	ExecuteFunc func(ctx context.Context, cmd principalapp.UpdateCustomerStatusCommand) (*principal.Customer, error)
}

func (m *mockUpdateCustomerStatusUC) Execute(ctx context.Context, cmd principalapp.UpdateCustomerStatusCommand) (*principal.Customer, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockListUsersUC struct {
	ExecuteFunc func(ctx context.Context, q principalapp.ListUsersQuery) (*principalapp.ListUsersResult, error)
}

func (m *mockListUsersUC) Execute(ctx context.Context, q principalapp.ListUsersQuery) (*principalapp.ListUsersResult, error) {
	return m.ExecuteFunc(ctx, q)
}

type mockPlanService struct {
	CreatePlanFunc   func(ctx context.Context, d subscription.PlanDetails) (*subscription.Plan, error)
	ListPlansFunc    func(ctx context.Context) ([]*subscription.Plan, error)
	GetPlanFunc      func(ctx context.Context, planUID string) (*subscription.Plan, error)
	UpdatePlanFunc   func(ctx context.Context, planUID string, d subscription.PlanDetails) (*subscription.Plan, error)
	DeletePlanFunc   func(ctx context.Context, planUID string) error
	ListFeaturesFunc func(ctx context.Context) ([]*subscription.Feature, error)
	EnrollFunc       func(ctx context.Context, customerUID, planUID string) (*subscriptionapp.EnrollResult, error)
}

func (m *mockPlanService) CreatePlan(ctx context.Context, d subscription.PlanDetails) (*subscription.Plan, error) {
	return m.CreatePlanFunc(ctx, d)
}

func (m *mockPlanService) ListPlans(ctx context.Context) ([]*subscription.Plan, error) {
	return m.ListPlansFunc(ctx)
}

func (m *mockPlanService) GetPlan(ctx context.Context, planUID string) (*subscription.Plan, error) {
	return m.GetPlanFunc(ctx, planUID)
}

func (m *mockPlanService) UpdatePlan(ctx context.Context, planUID string, d subscription.PlanDetails) (*subscription.Plan, error) {
	return m.UpdatePlanFunc(ctx, planUID, d)
}

func (m *mockPlanService) DeletePlan(ctx context.Context, planUID string) error {
	return m.DeletePlanFunc(ctx, planUID)
}

func (m *mockPlanService) ListFeatures(ctx context.Context) ([]*subscription.Feature, error) {
	return m.ListFeaturesFunc(ctx)
}

func (m *mockPlanService) Enroll(ctx context.Context, customerUID, planUID string) (*subscriptionapp.EnrollResult, error) {
	return m.EnrollFunc(ctx, customerUID, planUID)
}

type mockOrganizationService struct {
	CreateOrganizationFunc func(ctx context.Context, c *principal.Customer, cmd tenant.CreateOrganizationCommand) (*organization.Organization, error)
	DeleteOrganizationFunc func(ctx context.Context, c *principal.Customer, orgUID string) error
	ListOrganizationsFunc  func(ctx context.Context, c *principal.Customer) ([]*organization.Organization, error)
}

func (m *mockOrganizationService) CreateOrganization(ctx context.Context, c *principal.Customer, cmd tenant.CreateOrganizationCommand) (*organization.Organization, error) {
	return m.CreateOrganizationFunc(ctx, c, cmd)
}

func (m *mockOrganizationService) DeleteOrganization(ctx context.Context, c *principal.Customer, orgUID string) error {
	return m.DeleteOrganizationFunc(ctx, c, orgUID)
}

func (m *mockOrganizationService) ListOrganizations(ctx context.Context, c *principal.Customer) ([]*organization.Organization, error) {
	return m.ListOrganizationsFunc(ctx, c)
}

// mockMembershipService only implements what the tests call; other methods
// panic through the nil func.
type mockMembershipService struct {
	JoinFunc                 func(ctx context.Context, c *principal.Customer, orgUID string) (*organization.Membership, error)
	ActivateMemberFunc       func(ctx context.Context, org *organization.Organization, memberUID string) (*organization.Membership, error)
	RemoveMemberFunc         func(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID string) error
	ListMembersFunc          func(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error)
	ListActiveMembersFunc    func(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error)
	AssignMemberRoleFunc     func(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID, roleUID string) (*organization.Membership, error)
	SetMemberPermissionsFunc func(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID string, codenames []string) error
	CreateRoleFunc           func(ctx context.Context, actor *principal.Customer, org *organization.Organization, name string, codenames []string) (*permission.Role, error)
	ListRolesFunc            func(ctx context.Context, org *organization.Organization) ([]*permission.Role, error)
	ListPermissionsFunc      func(ctx context.Context) ([]*permission.Permission, error)
	SetRolePermissionsFunc   func(ctx context.Context, actor *principal.Customer, org *organization.Organization, roleUID string, codenames []string) error
}

func (m *mockMembershipService) Join(ctx context.Context, c *principal.Customer, orgUID string) (*organization.Membership, error) {
	return m.JoinFunc(ctx, c, orgUID)
}

func (m *mockMembershipService) ActivateMember(ctx context.Context, org *organization.Organization, memberUID string) (*organization.Membership, error) {
	return m.ActivateMemberFunc(ctx, org, memberUID)
}

func (m *mockMembershipService) RemoveMember(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID string) error {
	return m.RemoveMemberFunc(ctx, actor, org, memberUID)
}

func (m *mockMembershipService) ListMembers(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error) {
	return m.ListMembersFunc(ctx, org, page, pageSize)
}

func (m *mockMembershipService) ListActiveMembers(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error) {
	return m.ListActiveMembersFunc(ctx, org, page, pageSize)
}

func (m *mockMembershipService) AssignMemberRole(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID, roleUID string) (*organization.Membership, error) {
	return m.AssignMemberRoleFunc(ctx, actor, org, memberUID, roleUID)
}

func (m *mockMembershipService) SetMemberPermissions(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID string, codenames []string) error {
	return m.SetMemberPermissionsFunc(ctx, actor, org, memberUID, codenames)
}

func (m *mockMembershipService) CreateRole(ctx context.Context, actor *principal.Customer, org *organization.Organization, name string, codenames []string) (*permission.Role, error) {
	return m.CreateRoleFunc(ctx, actor, org, name, codenames)
}

func (m *mockMembershipService) ListRoles(ctx context.Context, org *organization.Organization) ([]*permission.Role, error) {
	return m.ListRolesFunc(ctx, org)
}

func (m *mockMembershipService) ListPermissions(ctx context.Context) ([]*permission.Permission, error) {
	return m.ListPermissionsFunc(ctx)
}

func (m *mockMembershipService) SetRolePermissions(ctx context.Context, actor *principal.Customer, org *organization.Organization, roleUID string, codenames []string) error {
	return m.SetRolePermissionsFunc(ctx, actor, org, roleUID, codenames)
}
