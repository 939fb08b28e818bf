package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type CustomerRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PrincipalMapper
	logger logger.Interface
}

func NewCustomerRepository(db *gorm.DB, logger logger.Interface) principal.CustomerRepository {
	return &CustomerRepositoryImpl{
		db:     db,
		mapper: mappers.NewPrincipalMapper(),
		logger: logger,
	}
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, c *principal.Customer) error {
	model := r.mapper.CustomerToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if appErr := principalDuplicate(err, c.Username(), c.Email()); appErr != nil {
			return appErr
		}
		r.logger.Errorw("failed to create customer", "error", err, "username", c.Username())
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CustomerRepositoryImpl) GetByID(ctx context.Context, id uint) (*principal.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *CustomerRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*principal.Customer, error) {
	return r.first(ctx, "uuid = ?", uuid)
}

func (r *CustomerRepositoryImpl) GetByLogin(ctx context.Context, usernameOrEmail string) (*principal.Customer, error) {
	return r.first(ctx, "username = ? OR email = ?", usernameOrEmail, usernameOrEmail)
}

func (r *CustomerRepositoryImpl) GetByVerificationToken(ctx context.Context, token string) (*principal.Customer, error) {
	if token == "" {
		return nil, nil
	}
	return r.first(ctx, "verification_token = ?", token)
}

func (r *CustomerRepositoryImpl) first(ctx context.Context, query string, args ...any) (*principal.Customer, error) {
	var model models.CustomerModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return r.mapper.CustomerToEntity(&model)
}

func (r *CustomerRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *CustomerRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *CustomerRepositoryImpl) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.CustomerModel{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return count > 0, nil
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, c *principal.Customer) error {
	model := r.mapper.CustomerToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.CustomerModel{}).Where("id = ?", model.ID).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		if appErr := principalDuplicate(result.Error, c.Username(), c.Email()); appErr != nil {
			return appErr
		}
		r.logger.Errorw("failed to update customer", "error", result.Error, "principal_id", model.ID)
		return fmt.Errorf("failed to update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotExistError("user does not exist").Loc("user_uid", c.UUID(), "exist")
	}
	return nil
}

func (r *CustomerRepositoryImpl) List(ctx context.Context, filter principal.ListFilter) ([]*principal.Customer, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.CustomerModel{}).Where("deleted_at IS NULL")
	query = applyPrincipalFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	var rows []*models.CustomerModel
	if err := query.Scopes(db.Paginate(filter.Page, filter.PageSize, constants.MaxPageSize)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	customers, err := r.mapper.CustomersToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

