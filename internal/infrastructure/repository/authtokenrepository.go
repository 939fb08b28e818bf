package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/logger"
)

type AuthTokenRepository struct {
	db     *gorm.DB
	mapper mappers.AuthTokenMapper
	logger logger.Interface
}

func NewAuthTokenRepository(db *gorm.DB, logger logger.Interface) token.Repository {
	return &AuthTokenRepository{
		db:     db,
		mapper: mappers.NewAuthTokenMapper(),
		logger: logger,
	}
}

func (r *AuthTokenRepository) Create(ctx context.Context, t *token.AuthToken) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if isDuplicateOn(err, "token_hash") {
			return token.ErrHashCollision
		}
		if isDuplicateOn(err, "slot") {
			return token.ErrSlotTaken
		}
		return fmt.Errorf("failed to create auth token: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *AuthTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*token.AuthToken, error) {
	var model models.AuthTokenModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("token_hash = ?", tokenHash).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get auth token: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *AuthTokenRepository) CountLive(ctx context.Context, kind principal.Kind, principalID uint, now time.Time) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.AuthTokenModel{}).
		Scopes(ownedBy(kind, principalID), db.Unexpired(now)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count live tokens: %w", err)
	}
	return count, nil
}

func (r *AuthTokenRepository) UsedSlots(ctx context.Context, kind principal.Kind, principalID uint) ([]int, error) {
	var slots []int
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.AuthTokenModel{}).
		Scopes(ownedBy(kind, principalID)).
		Order("slot ASC").
		Pluck("slot", &slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list token slots: %w", err)
	}
	return slots, nil
}

func (r *AuthTokenRepository) DeleteExpired(ctx context.Context, kind principal.Kind, principalID uint, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Scopes(ownedBy(kind, principalID)).
		Where("expires_at <= ?", now).
		Delete(&models.AuthTokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *AuthTokenRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.AuthTokenModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	return nil
}

func (r *AuthTokenRepository) DeleteByPrincipal(ctx context.Context, kind principal.Kind, principalID uint) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Scopes(ownedBy(kind, principalID)).
		Delete(&models.AuthTokenModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete principal tokens", "error", result.Error, "kind", kind, "principal_id", principalID)
		return 0, fmt.Errorf("failed to delete principal tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func ownedBy(kind principal.Kind, principalID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("principal_kind = ? AND principal_id = ?", kind.String(), principalID)
	}
}
