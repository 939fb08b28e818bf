package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// AutoMigrateModels lists every persistence model in dependency order
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.OperatorModel{},
		&models.CustomerModel{},
		&models.AuthTokenModel{},
		&models.RoleModel{},
		&models.PermissionModel{},
		&models.RolePermissionModel{},
		&models.OrganizationModel{},
		&models.MembershipModel{},
		&models.MemberPermissionModel{},
		&models.FeatureModel{},
		&models.PlanModel{},
		&models.PlanFeatureModel{},
		&models.EnrollmentModel{},
		&models.QuotaSlotModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the models. Used for
// sqlite and development databases.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) Strategy {
	return &GormAutoMigrateStrategy{
		logger: log.With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := AutoMigrateModels()
	s.logger.Infow("starting gorm auto migration", "models_count", len(all))

	if err := db.AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
