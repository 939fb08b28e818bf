package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type PermissionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPermissionRepository(db *gorm.DB, logger logger.Interface) permission.PermissionRepository {
	return &PermissionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PermissionRepository) CreateIfMissing(ctx context.Context, p *permission.Permission) (bool, error) {
	model := &models.PermissionModel{
		Codename:  p.Codename(),
		Name:      p.Name(),
		Type:      p.Type(),
		Scope:     p.Scope().String(),
		CreatedAt: p.CreatedAt(),
	}

	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create permission %s: %w", p.Codename(), result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	return true, p.SetID(model.ID)
}

func (r *PermissionRepository) ListByScope(ctx context.Context, scope permission.ScopeType) ([]*permission.Permission, error) {
	var rows []models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("scope = ?", scope.String()).Order("codename ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissionsToEntities(rows)
}

func (r *PermissionRepository) GetByCodenames(ctx context.Context, scope permission.ScopeType, codenames []string) ([]*permission.Permission, error) {
	if len(codenames) == 0 {
		return []*permission.Permission{}, nil
	}
	var rows []models.PermissionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("scope = ? AND codename IN ?", scope.String(), codenames).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions by codenames: %w", err)
	}
	return permissionsToEntities(rows)
}

func (r *PermissionRepository) RoleCodenames(ctx context.Context, roleID uint) ([]string, error) {
	var codenames []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PermissionModel{}).
		Joins("JOIN "+constants.TableRolePermissions+" rp ON rp.permission_id = "+constants.TablePermissions+".id").
		Where("rp.role_id = ?", roleID).
		Order(constants.TablePermissions+".codename ASC").
		Pluck(constants.TablePermissions+".codename", &codenames).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}
	return codenames, nil
}

func (r *PermissionRepository) ReplaceRolePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	now := biztime.NowUTC()
	rows := make([]models.RolePermissionModel, 0, len(permissionIDs))
	for _, id := range permissionIDs {
		rows = append(rows, models.RolePermissionModel{RoleID: roleID, PermissionID: id, CreatedAt: now})
	}
	if err := tx.Create(&rows).Error; err != nil {
		r.logger.Errorw("failed to grant role permissions", "error", err, "role_id", roleID)
		return fmt.Errorf("failed to grant role permissions: %w", err)
	}
	return nil
}

func (r *PermissionRepository) MemberCodenames(ctx context.Context, membershipID uint) ([]string, error) {
	var codenames []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PermissionModel{}).
		Joins("JOIN "+constants.TableMemberPermissions+" mp ON mp.permission_id = "+constants.TablePermissions+".id").
		Where("mp.membership_id = ?", membershipID).
		Order(constants.TablePermissions+".codename ASC").
		Pluck(constants.TablePermissions+".codename", &codenames).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get member permissions: %w", err)
	}
	return codenames, nil
}

func (r *PermissionRepository) ReplaceMemberPermissions(ctx context.Context, membershipID uint, permissionIDs []uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("membership_id = ?", membershipID).Delete(&models.MemberPermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear member permissions: %w", err)
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	now := biztime.NowUTC()
	rows := make([]models.MemberPermissionModel, 0, len(permissionIDs))
	for _, id := range permissionIDs {
		rows = append(rows, models.MemberPermissionModel{MembershipID: membershipID, PermissionID: id, CreatedAt: now})
	}
	if err := tx.Create(&rows).Error; err != nil {
		r.logger.Errorw("failed to grant member permissions", "error", err, "membership_id", membershipID)
		return fmt.Errorf("failed to grant member permissions: %w", err)
	}
	return nil
}

func permissionsToEntities(rows []models.PermissionModel) ([]*permission.Permission, error) {
	out := make([]*permission.Permission, 0, len(rows))
	for _, m := range rows {
		p, err := permission.ReconstructPermission(m.ID, m.Codename, m.Name, m.Type, permission.ScopeType(m.Scope), m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct permission: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}
