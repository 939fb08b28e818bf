package catalog

import (
	"context"
	"fmt"

	"github.com/orris-inc/warden/internal/domain/catalog"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// SeedResult counts the rows a seed run inserted
type SeedResult struct {
	Permissions int
	Features    int
}

// Seeder syncs the catalog into storage. It only inserts; rows absent from
// the catalog are left alone.
type Seeder struct {
	permissions permission.PermissionRepository
	features    subscription.FeatureRepository
	tx          db.Transactor
	now         biztime.Clock
	logger      logger.Interface
}

func NewSeeder(
	permissions permission.PermissionRepository,
	features subscription.FeatureRepository,
	tx db.Transactor,
	logger logger.Interface,
) *Seeder {
	return &Seeder{
		permissions: permissions,
		features:    features,
		tx:          tx,
		now:         biztime.NowUTC,
		logger:      logger,
	}
}

func (s *Seeder) Seed(ctx context.Context, cat *catalog.Catalog) (SeedResult, error) {
	var result SeedResult
	now := s.now()

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, def := range cat.AllPermissions() {
			p, err := permission.NewPermission(def.Codename, def.Name, def.Type, def.Scope, now)
			if err != nil {
				return fmt.Errorf("invalid permission %s: %w", def.Codename, err)
			}
			created, err := s.permissions.CreateIfMissing(ctx, p)
			if err != nil {
				return err
			}
			if created {
				result.Permissions++
			}
		}

		for _, def := range cat.Features() {
			f, err := subscription.NewFeature(def.Code, def.Name, now)
			if err != nil {
				return fmt.Errorf("invalid feature %s: %w", def.Code, err)
			}
			created, err := s.features.CreateIfMissing(ctx, f)
			if err != nil {
				return err
			}
			if created {
				result.Features++
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("failed to seed catalog", "error", err)
		return SeedResult{}, fmt.Errorf("failed to seed catalog: %w", err)
	}

	s.logger.Infow("catalog seeded",
		"permissions_created", result.Permissions,
		"features_created", result.Features,
	)
	return result, nil
}
