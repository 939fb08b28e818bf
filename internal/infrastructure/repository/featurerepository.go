package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/db"
)

type FeatureRepository struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) subscription.FeatureRepository {
	return &FeatureRepository{db: db}
}

func (r *FeatureRepository) CreateIfMissing(ctx context.Context, f *subscription.Feature) (bool, error) {
	model := &models.FeatureModel{
		Code:      f.Code(),
		Name:      f.Name(),
		CreatedAt: f.CreatedAt(),
	}
	result := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create feature %s: %w", f.Code(), result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	return true, f.SetID(model.ID)
}

func (r *FeatureRepository) List(ctx context.Context) ([]*subscription.Feature, error) {
	var rows []models.FeatureModel
	if err := db.GetTxFromContext(ctx, r.db).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	return featuresToEntities(rows)
}

func (r *FeatureRepository) GetByCodes(ctx context.Context, codes []string) ([]*subscription.Feature, error) {
	if len(codes) == 0 {
		return []*subscription.Feature{}, nil
	}
	var rows []models.FeatureModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code IN ?", codes).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get features: %w", err)
	}
	return featuresToEntities(rows)
}

func featuresToEntities(rows []models.FeatureModel) ([]*subscription.Feature, error) {
	out := make([]*subscription.Feature, 0, len(rows))
	for _, m := range rows {
		f, err := subscription.ReconstructFeature(m.ID, m.Code, m.Name, m.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
