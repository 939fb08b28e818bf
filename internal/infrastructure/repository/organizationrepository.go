package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type OrganizationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OrganizationMapper
	logger logger.Interface
}

func NewOrganizationRepository(db *gorm.DB, logger logger.Interface) organization.Repository {
	return &OrganizationRepositoryImpl{
		db:     db,
		mapper: mappers.NewOrganizationMapper(),
		logger: logger,
	}
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *organization.Organization) error {
	model := r.mapper.ToModel(org)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if isDuplicateOn(err, "name_key") {
			return errors.NewAlreadyExistsError("an organization with that name already exists").Loc("org_name", org.Name(), "unique")
		}
		r.logger.Errorw("failed to create organization", "error", err, "name", org.Name())
		return fmt.Errorf("failed to create organization: %w", err)
	}

	if err := org.SetID(model.ID); err != nil {
		return err
	}
	r.logger.Infow("organization created", "organization_id", model.ID, "uid", model.UID)
	return nil
}

func (r *OrganizationRepositoryImpl) GetByUID(ctx context.Context, uid string) (*organization.Organization, error) {
	var model models.OrganizationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("uid = ?", uid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *OrganizationRepositoryImpl) GetByID(ctx context.Context, id uint) (*organization.Organization, error) {
	var model models.OrganizationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *OrganizationRepositoryImpl) ExistsByNameKey(ctx context.Context, nameKey string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Unscoped().
		Model(&models.OrganizationModel{}).
		Where("name_key = ?", nameKey).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check organization name: %w", err)
	}
	return count > 0, nil
}

func (r *OrganizationRepositoryImpl) CountByAdmin(ctx context.Context, adminID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrganizationModel{}).
		Where("admin_id = ?", adminID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count organizations: %w", err)
	}
	return count, nil
}

func (r *OrganizationRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint) ([]*organization.Organization, error) {
	member := db.GetTxFromContext(ctx, r.db).
		Model(&models.MembershipModel{}).
		Select("organization_id").
		Where("customer_id = ?", customerID)

	var rows []*models.OrganizationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("admin_id = ? OR id IN (?)", customerID, member).
		Order(constants.TableOrganizations + ".id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *OrganizationRepositoryImpl) SoftDelete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.OrganizationModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete organization", "error", err, "organization_id", id)
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return nil
}
