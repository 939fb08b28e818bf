package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Create inserts the plan row; gorm writes the feature rows through the
// association in the same statement transaction
func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	model := r.toModel(plan)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateOn(err, "name") {
			return errors.NewAlreadyExistsError("a plan with that name already exists").Loc("name", plan.Name(), "unique")
		}
		r.logger.Errorw("failed to create subscription plan", "error", err, "name", plan.Name())
		return fmt.Errorf("failed to create subscription plan: %w", err)
	}

	if err := plan.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("subscription plan created successfully", "plan_id", model.ID, "uid", model.UID)
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).Preload("Features").First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription plan by ID", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get subscription plan: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) GetByUID(ctx context.Context, uid string) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).Preload("Features").Where("uid = ?", uid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription plan: %w", err)
	}
	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check plan name: %w", err)
	}
	return count > 0, nil
}

func (r *PlanRepositoryImpl) List(ctx context.Context) ([]*subscription.Plan, error) {
	var rows []*models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).Preload("Features").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscription plans: %w", err)
	}

	plans := make([]*subscription.Plan, 0, len(rows))
	for _, row := range rows {
		p, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Update writes the plan columns, then swaps the feature rows for the
// current set. Callers provide the transaction.
func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *subscription.Plan) error {
	tx := db.GetTxFromContext(ctx, r.db)
	model := r.toModel(plan)

	result := tx.Model(&models.PlanModel{}).Where("id = ?", plan.ID()).Updates(map[string]any{
		"name":          model.Name,
		"description":   model.Description,
		"price":         model.Price,
		"sale_price":    model.SalePrice,
		"validity_days": model.ValidityDays,
		"updated_at":    model.UpdatedAt,
	})
	if result.Error != nil {
		if isDuplicateOn(result.Error, "name") {
			return errors.NewAlreadyExistsError("a plan with that name already exists").Loc("name", plan.Name(), "unique")
		}
		r.logger.Errorw("failed to update subscription plan", "error", result.Error, "plan_id", plan.ID())
		return fmt.Errorf("failed to update subscription plan: %w", result.Error)
	}

	if err := tx.Where("plan_id = ?", plan.ID()).Delete(&models.PlanFeatureModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear plan features: %w", err)
	}
	if len(model.Features) == 0 {
		return nil
	}
	for i := range model.Features {
		model.Features[i].PlanID = plan.ID()
	}
	if err := tx.Create(&model.Features).Error; err != nil {
		return fmt.Errorf("failed to store plan features: %w", err)
	}
	return nil
}

// SoftDelete stamps deleted_at. Feature rows stay for the audit trail.
func (r *PlanRepositoryImpl) SoftDelete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.PlanModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete subscription plan", "error", err, "plan_id", id)
		return fmt.Errorf("failed to delete subscription plan: %w", err)
	}
	return nil
}

func (r *PlanRepositoryImpl) toModel(plan *subscription.Plan) *models.PlanModel {
	features := plan.Features()
	rows := make([]models.PlanFeatureModel, 0, len(features))
	for _, f := range features {
		rows = append(rows, models.PlanFeatureModel{
			FeatureCode: f.FeatureCode,
			Quantity:    f.Quantity,
		})
	}
	return &models.PlanModel{
		ID:           plan.ID(),
		UID:          plan.UID(),
		Name:         plan.Name(),
		Description:  plan.Description(),
		Price:        plan.Price(),
		SalePrice:    plan.SalePrice(),
		ValidityDays: plan.ValidityDays(),
		Features:     rows,
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}
}

func (r *PlanRepositoryImpl) toEntity(model *models.PlanModel) (*subscription.Plan, error) {
	features := make([]subscription.PlanFeature, 0, len(model.Features))
	for _, f := range model.Features {
		features = append(features, subscription.PlanFeature{
			FeatureCode: f.FeatureCode,
			Quantity:    f.Quantity,
		})
	}

	plan, err := subscription.ReconstructPlan(model.ID, model.UID, subscription.PlanDetails{
		Name:         model.Name,
		Description:  model.Description,
		Price:        model.Price,
		SalePrice:    model.SalePrice,
		ValidityDays: model.ValidityDays,
		Features:     features,
	}, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		r.logger.Errorw("failed to reconstruct plan", "error", err, "plan_id", model.ID)
		return nil, fmt.Errorf("failed to reconstruct plan: %w", err)
	}
	return plan, nil
}
