package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/entitlement"
	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/infrastructure/repository"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	operatorRepo     principal.OperatorRepository
	customerRepo     principal.CustomerRepository
	authTokenRepo    token.Repository
	roleRepo         permission.RoleRepository
	permissionRepo   permission.PermissionRepository
	organizationRepo organization.Repository
	membershipRepo   organization.MembershipRepository
	planRepo         subscription.PlanRepository
	featureRepo      subscription.FeatureRepository
	enrollmentRepo   subscription.EnrollmentRepository
	quotaSlotRepo    entitlement.QuotaSlotRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		operatorRepo:     repository.NewOperatorRepository(db, log),
		customerRepo:     repository.NewCustomerRepository(db, log),
		authTokenRepo:    repository.NewAuthTokenRepository(db, log),
		roleRepo:         repository.NewRoleRepository(db, log),
		permissionRepo:   repository.NewPermissionRepository(db, log),
		organizationRepo: repository.NewOrganizationRepository(db, log),
		membershipRepo:   repository.NewMembershipRepository(db, log),
		planRepo:         repository.NewPlanRepository(db, log),
		featureRepo:      repository.NewFeatureRepository(db),
		enrollmentRepo:   repository.NewEnrollmentRepository(db, log),
		quotaSlotRepo:    repository.NewQuotaSlotRepository(db),
	}
}
