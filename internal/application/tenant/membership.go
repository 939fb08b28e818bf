package tenant

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/catalog"
	"github.com/orris-inc/warden/internal/domain/entitlement"
	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// MembershipService manages the customers and roles of an organization.
// Methods taking an organization expect it already resolved by Resolver.
type MembershipService struct {
	resolver        *Resolver
	memberships     organization.MembershipRepository
	roleRepo        permission.RoleRepository
	perms           permission.PermissionRepository
	roles           RoleAdmin
	gate            EntitlementGate
	tx              db.Transactor
	defaultRoleName string
	now             biztime.Clock
	logger          logger.Interface
}

func NewMembershipService(
	resolver *Resolver,
	memberships organization.MembershipRepository,
	roleRepo permission.RoleRepository,
	perms permission.PermissionRepository,
	roles RoleAdmin,
	gate EntitlementGate,
	tx db.Transactor,
	defaultRoleName string,
	logger logger.Interface,
) *MembershipService {
	return &MembershipService{
		resolver:        resolver,
		memberships:     memberships,
		roleRepo:        roleRepo,
		perms:           perms,
		roles:           roles,
		gate:            gate,
		tx:              tx,
		defaultRoleName: defaultRoleName,
		now:             biztime.NowUTC,
		logger:          logger,
	}
}

// Join makes c a member of orgUID with the organization's default role. The
// membership is pending when the organization requires approval.
func (s *MembershipService) Join(ctx context.Context, c *principal.Customer, orgUID string) (*organization.Membership, error) {
	org, err := s.resolver.Organization(ctx, orgUID)
	if err != nil {
		return nil, err
	}
	if org.RegistrationType() == organization.RegistrationAdminOnly {
		return nil, errors.NewForbiddenError("this organization does not accept join requests").
			Loc("orguid", orgUID, "not_allowed")
	}

	admin, err := s.resolver.Admin(ctx, org)
	if err != nil {
		return nil, err
	}
	live, err := s.memberships.CountActive(ctx, org.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	feature, err := s.gate.CheckQuota(ctx, admin, catalog.FeatureAddMember, live)
	if err != nil {
		return nil, err
	}

	if org.IsAdmin(c.ID()) {
		return nil, alreadyMember(orgUID)
	}
	existing, err := s.memberships.Get(ctx, org.ID(), c.ID(), true)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if existing != nil {
		return nil, alreadyMember(orgUID)
	}

	role, err := s.roleRepo.GetByName(ctx, permission.OrganizationScope(org.ID()), s.defaultRoleName)
	if err != nil {
		return nil, fmt.Errorf("failed to get default role: %w", err)
	}
	if role == nil {
		s.logger.Errorw("organization has no default role", "organization", org.UID(), "role", s.defaultRoleName)
		return nil, errors.NewInternalError("the organization is missing its default role")
	}

	active := org.RegistrationType() != organization.RegistrationApprovalRequired
	m, err := organization.NewMembership(org.ID(), c.ID(), role.ID(), active, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to build membership: %w", err)
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberships.Create(ctx, m); err != nil {
			return err
		}
		if active {
			return s.gate.Reserve(ctx, admin, feature, entitlement.OrganizationScope(org.ID()), m.UID())
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join organization: %w", err)
	}

	s.logger.Infow("customer joined organization",
		"organization", org.UID(),
		"membership", m.UID(),
		"active", active,
	)
	return m, nil
}

// ActivateMember approves a pending membership, taking an add_member slot
func (s *MembershipService) ActivateMember(ctx context.Context, org *organization.Organization, memberUID string) (*organization.Membership, error) {
	m, err := s.member(ctx, org, memberUID)
	if err != nil {
		return nil, err
	}
	if m.IsActive() {
		return nil, errors.NewValidationError("membership is already active").Loc("member_uid", memberUID, "already_active")
	}

	admin, err := s.resolver.Admin(ctx, org)
	if err != nil {
		return nil, err
	}
	live, err := s.memberships.CountActive(ctx, org.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	feature, err := s.gate.CheckQuota(ctx, admin, catalog.FeatureAddMember, live)
	if err != nil {
		return nil, err
	}

	if err := m.Activate(s.now()); err != nil {
		return nil, errors.NewValidationError(err.Error()).Loc("member_uid", memberUID, "invalid")
	}
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberships.Update(ctx, m); err != nil {
			return err
		}
		return s.gate.Reserve(ctx, admin, feature, entitlement.OrganizationScope(org.ID()), m.UID())
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to activate member: %w", err)
	}

	s.logger.Infow("membership activated", "organization", org.UID(), "membership", m.UID())
	return m, nil
}

// RemoveMember soft-deletes a membership and frees its add_member slot
func (s *MembershipService) RemoveMember(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID string) error {
	m, err := s.member(ctx, org, memberUID)
	if err != nil {
		return err
	}
	if m.CustomerID() == actor.ID() {
		return errors.NewForbiddenError("you cannot remove yourself").Loc("member_uid", memberUID, "self_update")
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberships.SoftDelete(ctx, m.ID()); err != nil {
			return err
		}
		return s.gate.Release(ctx, catalog.FeatureAddMember, entitlement.OrganizationScope(org.ID()), m.UID())
	})
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.logger.Infow("member removed", "organization", org.UID(), "membership", m.UID())
	return nil
}

// ListActiveMembers returns the active, non-deleted memberships of org
func (s *MembershipService) ListActiveMembers(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error) {
	return s.list(ctx, org, organization.ListFilter{Page: page, PageSize: pageSize, ActiveOnly: true})
}

// ListMembers returns every non-deleted membership of org, pending ones included
func (s *MembershipService) ListMembers(ctx context.Context, org *organization.Organization, page, pageSize int) ([]*organization.Membership, int64, error) {
	return s.list(ctx, org, organization.ListFilter{Page: page, PageSize: pageSize})
}

func (s *MembershipService) list(ctx context.Context, org *organization.Organization, filter organization.ListFilter) ([]*organization.Membership, int64, error) {
	members, total, err := s.memberships.List(ctx, org.ID(), filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

// AssignMemberRole switches a member to another role of the same organization
func (s *MembershipService) AssignMemberRole(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID, roleUID string) (*organization.Membership, error) {
	m, err := s.member(ctx, org, memberUID)
	if err != nil {
		return nil, err
	}
	if m.CustomerID() == actor.ID() {
		return nil, errors.NewForbiddenError("you cannot change your own role").Loc("member_uid", memberUID, "self_update")
	}
	role, err := s.orgRole(ctx, org, roleUID)
	if err != nil {
		return nil, err
	}

	if err := m.AssignRole(role.ID(), s.now()); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	if err := s.memberships.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	s.logger.Infow("member role assigned", "organization", org.UID(), "membership", m.UID(), "role", role.UID())
	return m, nil
}

// SetMemberPermissions replaces the direct permission grants of a member
func (s *MembershipService) SetMemberPermissions(ctx context.Context, actor *principal.Customer, org *organization.Organization, memberUID string, codenames []string) error {
	m, err := s.member(ctx, org, memberUID)
	if err != nil {
		return err
	}
	if m.CustomerID() == actor.ID() {
		return errors.NewForbiddenError("you cannot edit your own permissions").Loc("member_uid", memberUID, "self_update")
	}

	ids, err := s.roles.PermissionIDs(ctx, permission.ScopeOrganization, codenames)
	if err != nil {
		return err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.perms.ReplaceMemberPermissions(ctx, m.ID(), ids)
	})
	if err != nil {
		return fmt.Errorf("failed to replace member permissions: %w", err)
	}

	s.logger.Infow("member permissions replaced", "organization", org.UID(), "membership", m.UID(), "count", len(ids))
	return nil
}

// CreateRole creates an organization role
func (s *MembershipService) CreateRole(ctx context.Context, actor *principal.Customer, org *organization.Organization, name string, codenames []string) (*permission.Role, error) {
	return s.roles.CreateRole(ctx, actor, permission.OrganizationScope(org.ID()), name, codenames)
}

func (s *MembershipService) ListRoles(ctx context.Context, org *organization.Organization) ([]*permission.Role, error) {
	return s.roles.ListRoles(ctx, permission.OrganizationScope(org.ID()))
}

func (s *MembershipService) ListPermissions(ctx context.Context) ([]*permission.Permission, error) {
	return s.roles.ListPermissions(ctx, permission.ScopeOrganization)
}

// SetRolePermissions replaces the permissions of an organization role. A
// member cannot edit the role they hold.
func (s *MembershipService) SetRolePermissions(ctx context.Context, actor *principal.Customer, org *organization.Organization, roleUID string, codenames []string) error {
	role, err := s.orgRole(ctx, org, roleUID)
	if err != nil {
		return err
	}

	var held *uint
	if !org.IsAdmin(actor.ID()) {
		m, err := s.resolver.MembershipIn(ctx, actor, org)
		if err != nil {
			return err
		}
		roleID := m.RoleID()
		held = &roleID
	}
	return s.roles.ReplaceRolePermissions(ctx, role, held, codenames)
}

// member looks a membership up inside org only
func (s *MembershipService) member(ctx context.Context, org *organization.Organization, memberUID string) (*organization.Membership, error) {
	m, err := s.memberships.GetByUID(ctx, org.ID(), memberUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if m == nil || m.IsDeleted() {
		return nil, errors.NewForbiddenError("member does not belong to this organization").
			Loc("member_uid", memberUID, "not_in_organization")
	}
	return m, nil
}

// orgRole looks a role up and refuses roles of any other scope
func (s *MembershipService) orgRole(ctx context.Context, org *organization.Organization, roleUID string) (*permission.Role, error) {
	role, err := s.roleRepo.GetByUID(ctx, roleUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil || !role.InOrganization(org.ID()) {
		return nil, errors.NewForbiddenError("role does not belong to this organization").
			Loc("role", roleUID, "not_in_organization")
	}
	return role, nil
}

func alreadyMember(orgUID string) error {
	return errors.NewAlreadyExistsError("you are already a member of this organization").
		Loc("orguid", orgUID, "already_member")
}
