package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type OperatorRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PrincipalMapper
	logger logger.Interface
}

func NewOperatorRepository(db *gorm.DB, logger logger.Interface) principal.OperatorRepository {
	return &OperatorRepositoryImpl{
		db:     db,
		mapper: mappers.NewPrincipalMapper(),
		logger: logger,
	}
}

func (r *OperatorRepositoryImpl) Create(ctx context.Context, o *principal.Operator) error {
	model := r.mapper.OperatorToModel(o)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if appErr := principalDuplicate(err, o.Username(), o.Email()); appErr != nil {
			return appErr
		}
		r.logger.Errorw("failed to create operator", "error", err, "username", o.Username())
		return fmt.Errorf("failed to create operator: %w", err)
	}

	return o.SetID(model.ID)
}

func (r *OperatorRepositoryImpl) GetByID(ctx context.Context, id uint) (*principal.Operator, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *OperatorRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*principal.Operator, error) {
	return r.first(ctx, "uuid = ?", uuid)
}

func (r *OperatorRepositoryImpl) GetByLogin(ctx context.Context, usernameOrEmail string) (*principal.Operator, error) {
	return r.first(ctx, "username = ? OR email = ?", usernameOrEmail, usernameOrEmail)
}

func (r *OperatorRepositoryImpl) GetByVerificationToken(ctx context.Context, token string) (*principal.Operator, error) {
	if token == "" {
		return nil, nil
	}
	return r.first(ctx, "verification_token = ?", token)
}

func (r *OperatorRepositoryImpl) first(ctx context.Context, query string, args ...any) (*principal.Operator, error) {
	var model models.OperatorModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	return r.mapper.OperatorToEntity(&model)
}

func (r *OperatorRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *OperatorRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *OperatorRepositoryImpl) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.OperatorModel{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check operator existence: %w", err)
	}
	return count > 0, nil
}

func (r *OperatorRepositoryImpl) Update(ctx context.Context, o *principal.Operator) error {
	model := r.mapper.OperatorToModel(o)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.OperatorModel{}).Where("id = ?", model.ID).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		if appErr := principalDuplicate(result.Error, o.Username(), o.Email()); appErr != nil {
			return appErr
		}
		r.logger.Errorw("failed to update operator", "error", result.Error, "principal_id", model.ID)
		return fmt.Errorf("failed to update operator: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotExistError("user does not exist").Loc("user_uid", o.UUID(), "exist")
	}
	return nil
}

func (r *OperatorRepositoryImpl) List(ctx context.Context, filter principal.ListFilter) ([]*principal.Operator, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.OperatorModel{}).Where("deleted_at IS NULL")
	query = applyPrincipalFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count operators: %w", err)
	}

	var rows []*models.OperatorModel
	if err := query.Scopes(db.Paginate(filter.Page, filter.PageSize, constants.MaxPageSize)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list operators: %w", err)
	}

	ops, err := r.mapper.OperatorsToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return ops, total, nil
}

func (r *OperatorRepositoryImpl) HasSuperuser(ctx context.Context) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.OperatorModel{}).
		Joins("JOIN "+constants.TableRoles+" ON "+constants.TableRoles+".id = "+constants.TableOperators+".role_id").
		Where(constants.TableRoles+".kind = ? AND "+constants.TableOperators+".deleted_at IS NULL", string(permission.RoleKindSuperuser)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check superuser: %w", err)
	}
	return count > 0, nil
}

func applyPrincipalFilter(query *gorm.DB, filter principal.ListFilter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// principalDuplicate maps a username or email clash to AlreadyExists
func principalDuplicate(err error, username, email string) error {
	col, dup := duplicateColumn(err, "username", "email")
	if !dup {
		return nil
	}
	switch col {
	case "username":
		return errors.NewAlreadyExistsError("a user with that username already exists").Loc("username", username, "unique")
	case "email":
		return errors.NewAlreadyExistsError("a user with that email already exists").Loc("email", email, "unique")
	}
	return nil
}
