package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type EnrollmentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewEnrollmentRepository(db *gorm.DB, logger logger.Interface) subscription.EnrollmentRepository {
	return &EnrollmentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *EnrollmentRepository) Get(ctx context.Context, customerID, planID uint) (*subscription.Enrollment, error) {
	var model models.EnrollmentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("customer_id = ? AND plan_id = ?", customerID, planID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return subscription.ReconstructEnrollment(model.ID, model.CustomerID, model.PlanID, model.ExpiresAt, model.CreatedAt, model.UpdatedAt)
}

func (r *EnrollmentRepository) Save(ctx context.Context, e *subscription.Enrollment) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if e.ID() == 0 {
		model := &models.EnrollmentModel{
			CustomerID: e.CustomerID(),
			PlanID:     e.PlanID(),
			ExpiresAt:  e.ExpiresAt(),
			CreatedAt:  e.CreatedAt(),
			UpdatedAt:  e.UpdatedAt(),
		}
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create enrollment", "error", err, "customer_id", e.CustomerID(), "plan_id", e.PlanID())
			return fmt.Errorf("failed to create enrollment: %w", err)
		}
		return e.SetID(model.ID)
	}

	err := tx.Model(&models.EnrollmentModel{}).
		Where("id = ?", e.ID()).
		Updates(map[string]any{
			"expires_at": e.ExpiresAt(),
			"updated_at": e.UpdatedAt(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}
	return nil
}
