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

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OrganizationMapper
	logger logger.Interface
}

func NewMembershipRepository(db *gorm.DB, logger logger.Interface) organization.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     db,
		mapper: mappers.NewOrganizationMapper(),
		logger: logger,
	}
}

func (r *MembershipRepositoryImpl) Create(ctx context.Context, m *organization.Membership) error {
	model := r.mapper.MembershipToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if isDuplicateOn(err, "customer_id") || isDuplicateOn(err, "pair") {
			return errors.NewAlreadyExistsError("customer is already a member of this organization").Loc("orguid", nil, "already_member")
		}
		r.logger.Errorw("failed to create membership", "error", err, "organization_id", m.OrganizationID())
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return m.SetID(model.ID)
}

func (r *MembershipRepositoryImpl) Get(ctx context.Context, organizationID, customerID uint, includeDeleted bool) (*organization.Membership, error) {
	query := db.GetTxFromContext(ctx, r.db)
	if includeDeleted {
		query = query.Unscoped()
	}

	var model models.MembershipModel
	err := query.Where("organization_id = ? AND customer_id = ?", organizationID, customerID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return r.mapper.MembershipToEntity(&model)
}

func (r *MembershipRepositoryImpl) GetByUID(ctx context.Context, organizationID uint, uid string) (*organization.Membership, error) {
	var model models.MembershipModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("organization_id = ? AND uid = ?", organizationID, uid).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return r.mapper.MembershipToEntity(&model)
}

func (r *MembershipRepositoryImpl) Update(ctx context.Context, m *organization.Membership) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.MembershipModel{}).
		Where("id = ?", m.ID()).
		Updates(map[string]any{
			"role_id":    m.RoleID(),
			"is_active":  m.IsActive(),
			"updated_at": m.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotExistError("membership does not exist").Loc("member_uid", m.UID(), "exist")
	}
	return nil
}

func (r *MembershipRepositoryImpl) SoftDelete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.MembershipModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}

func (r *MembershipRepositoryImpl) CountActive(ctx context.Context, organizationID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MembershipModel{}).
		Where("organization_id = ?", organizationID).
		Scopes(db.ActiveOnly()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}
	return count, nil
}

func (r *MembershipRepositoryImpl) List(ctx context.Context, organizationID uint, filter organization.ListFilter) ([]*organization.Membership, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.MembershipModel{}).
		Where("organization_id = ?", organizationID)
	if filter.ActiveOnly {
		query = query.Scopes(db.ActiveOnly())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count memberships: %w", err)
	}

	var rows []*models.MembershipModel
	err := query.
		Scopes(db.Paginate(filter.Page, filter.PageSize, constants.MaxPageSize)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list memberships: %w", err)
	}

	out := make([]*organization.Membership, 0, len(rows))
	for _, row := range rows {
		m, err := r.mapper.MembershipToEntity(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, nil
}
