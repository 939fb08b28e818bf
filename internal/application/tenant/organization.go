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

// CreateOrganizationCommand represents the input for creating an organization
type CreateOrganizationCommand struct {
	Name             string
	RegistrationType string
}

// OrganizationService runs the organization lifecycle under the
// create_organization quota
type OrganizationService struct {
	resolver        *Resolver
	orgs            organization.Repository
	roleRepo        permission.RoleRepository
	perms           permission.PermissionRepository
	roles           RoleAdmin
	gate            EntitlementGate
	catalog         *catalog.Catalog
	tx              db.Transactor
	defaultRoleName string
	now             biztime.Clock
	logger          logger.Interface
}

func NewOrganizationService(
	resolver *Resolver,
	orgs organization.Repository,
	roleRepo permission.RoleRepository,
	perms permission.PermissionRepository,
	roles RoleAdmin,
	gate EntitlementGate,
	cat *catalog.Catalog,
	tx db.Transactor,
	defaultRoleName string,
	logger logger.Interface,
) *OrganizationService {
	return &OrganizationService{
		resolver:        resolver,
		orgs:            orgs,
		roleRepo:        roleRepo,
		perms:           perms,
		roles:           roles,
		gate:            gate,
		catalog:         cat,
		tx:              tx,
		defaultRoleName: defaultRoleName,
		now:             biztime.NowUTC,
		logger:          logger,
	}
}

// CreateOrganization creates an organization administered by c together with
// its default role, and takes a create_organization slot.
func (s *OrganizationService) CreateOrganization(ctx context.Context, c *principal.Customer, cmd CreateOrganizationCommand) (*organization.Organization, error) {
	live, err := s.orgs.CountByAdmin(ctx, c.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to count organizations: %w", err)
	}
	feature, err := s.gate.CheckQuota(ctx, c, catalog.FeatureCreateOrganization, live)
	if err != nil {
		return nil, err
	}

	exists, err := s.orgs.ExistsByNameKey(ctx, organization.NameKey(cmd.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to check organization name: %w", err)
	}
	if exists {
		return nil, errors.NewAlreadyExistsError("an organization with this name already exists").
			Loc("org_name", cmd.Name, "unique")
	}

	regType := organization.RegistrationType(cmd.RegistrationType)
	if cmd.RegistrationType == "" {
		regType = organization.RegistrationOpen
	}
	if !regType.IsValid() {
		return nil, errors.NewValidationError("invalid registration type").
			Loc("registration_type", cmd.RegistrationType, "oneof")
	}

	now := s.now()
	org, err := organization.NewOrganization(cmd.Name, c.ID(), regType, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).Loc("org_name", cmd.Name, "invalid")
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.orgs.Create(ctx, org); err != nil {
			return err
		}
		if err := s.createDefaultRole(ctx, c, org); err != nil {
			return err
		}
		return s.gate.Reserve(ctx, c, feature, entitlement.ScopePlatform, org.UID())
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		s.logger.Errorw("failed to create organization", "name", cmd.Name, "error", err)
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.logger.Infow("organization created", "organization", org.UID(), "admin_id", c.ID())
	return org, nil
}

// createDefaultRole gives new members every read permission of the organization scope
func (s *OrganizationService) createDefaultRole(ctx context.Context, c *principal.Customer, org *organization.Organization) error {
	createdBy := c.ID()
	role, err := permission.NewRole(s.defaultRoleName, permission.RoleKindStandard, permission.OrganizationScope(org.ID()), &createdBy, s.now())
	if err != nil {
		return fmt.Errorf("failed to build default role: %w", err)
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return err
	}

	var codenames []string
	for _, def := range s.catalog.Permissions(permission.ScopeOrganization) {
		if def.Type == catalog.TypeRead {
			codenames = append(codenames, def.Codename)
		}
	}
	ids, err := s.roles.PermissionIDs(ctx, permission.ScopeOrganization, codenames)
	if err != nil {
		return err
	}
	return s.perms.ReplaceRolePermissions(ctx, role.ID(), ids)
}

// DeleteOrganization soft-deletes an organization. Only its admin may do so.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, c *principal.Customer, orgUID string) error {
	org, err := s.resolver.Organization(ctx, orgUID)
	if err != nil {
		return err
	}
	if !org.IsAdmin(c.ID()) {
		return errors.NewForbiddenError("only the organization admin can delete it").Loc("orguid", orgUID, "not_admin")
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.orgs.SoftDelete(ctx, org.ID()); err != nil {
			return err
		}
		return s.gate.Release(ctx, catalog.FeatureCreateOrganization, entitlement.ScopePlatform, org.UID())
	})
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	s.logger.Infow("organization deleted", "organization", org.UID())
	return nil
}

// ListOrganizations returns the organizations c administers or belongs to
func (s *OrganizationService) ListOrganizations(ctx context.Context, c *principal.Customer) ([]*organization.Organization, error) {
	orgs, err := s.orgs.ListByCustomer(ctx, c.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}
