package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type RoleRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewRoleRepository(db *gorm.DB, logger logger.Interface) permission.RoleRepository {
	return &RoleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RoleRepository) Create(ctx context.Context, role *permission.Role) error {
	model := roleToModel(role)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if isDuplicateOn(err, "name") {
			return errors.NewAlreadyExistsError("a role with that name already exists").Loc("name", role.Name(), "unique")
		}
		r.logger.Errorw("failed to create role", "error", err, "name", role.Name(), "scope", role.Scope().Key())
		return fmt.Errorf("failed to create role: %w", err)
	}

	return role.SetID(model.ID)
}

func (r *RoleRepository) GetByID(ctx context.Context, id uint) (*permission.Role, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *RoleRepository) GetByUID(ctx context.Context, uid string) (*permission.Role, error) {
	return r.first(ctx, "uid = ?", uid)
}

func (r *RoleRepository) GetByName(ctx context.Context, scope permission.Scope, name string) (*permission.Role, error) {
	return r.first(ctx, "scope_key = ? AND name = ?", scope.Key(), name)
}

func (r *RoleRepository) GetSuperuser(ctx context.Context) (*permission.Role, error) {
	return r.first(ctx, "scope_key = ? AND kind = ?", permission.PlatformScope().Key(), string(permission.RoleKindSuperuser))
}

func (r *RoleRepository) first(ctx context.Context, query string, args ...any) (*permission.Role, error) {
	var model models.RoleModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(query, args...).Order("id ASC").First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return roleToEntity(&model)
}

func (r *RoleRepository) List(ctx context.Context, scope permission.Scope, includeSuperuser bool) ([]*permission.Role, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("scope_key = ?", scope.Key())
	if !includeSuperuser {
		query = query.Where("kind <> ?", string(permission.RoleKindSuperuser))
	}

	var rows []models.RoleModel
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	roles := make([]*permission.Role, 0, len(rows))
	for i := range rows {
		role, err := roleToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func roleToModel(role *permission.Role) *models.RoleModel {
	scope := role.Scope()
	model := &models.RoleModel{
		ID:        role.ID(),
		UID:       role.UID(),
		Name:      role.Name(),
		Kind:      string(role.Kind()),
		ScopeType: scope.Type.String(),
		ScopeKey:  scope.Key(),
		CreatedBy: role.CreatedBy(),
		CreatedAt: role.CreatedAt(),
		UpdatedAt: role.UpdatedAt(),
	}
	if !scope.IsPlatform() {
		orgID := scope.OrganizationID
		model.OrganizationID = &orgID
	}
	return model
}

func roleToEntity(model *models.RoleModel) (*permission.Role, error) {
	scope := permission.PlatformScope()
	if model.OrganizationID != nil {
		scope = permission.OrganizationScope(*model.OrganizationID)
	}
	role, err := permission.ReconstructRole(
		model.ID,
		model.UID,
		model.Name,
		permission.RoleKind(model.Kind),
		scope,
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct role: %w", err)
	}
	return role, nil
}
