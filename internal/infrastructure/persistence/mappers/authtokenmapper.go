package mappers

import (
	"gorm.io/datatypes"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
)

// AuthTokenMapper handles the conversion between AuthToken entities and persistence models.
type AuthTokenMapper interface {
	ToModel(entity *token.AuthToken) *models.AuthTokenModel
	ToEntity(model *models.AuthTokenModel) (*token.AuthToken, error)
}

type AuthTokenMapperImpl struct{}

func NewAuthTokenMapper() AuthTokenMapper {
	return &AuthTokenMapperImpl{}
}

func (m *AuthTokenMapperImpl) ToModel(entity *token.AuthToken) *models.AuthTokenModel {
	if entity == nil {
		return nil
	}
	return &models.AuthTokenModel{
		ID:            entity.ID(),
		PrincipalKind: entity.PrincipalKind().String(),
		PrincipalID:   entity.PrincipalID(),
		Slot:          entity.Slot(),
		TokenHash:     entity.TokenHash(),
		Details:       datatypes.JSONMap(entity.Details()),
		ExpiresAt:     entity.ExpiresAt(),
		CreatedAt:     entity.CreatedAt(),
	}
}

func (m *AuthTokenMapperImpl) ToEntity(model *models.AuthTokenModel) (*token.AuthToken, error) {
	if model == nil {
		return nil, nil
	}
	return token.ReconstructAuthToken(
		model.ID,
		principal.Kind(model.PrincipalKind),
		model.PrincipalID,
		model.Slot,
		model.TokenHash,
		map[string]any(model.Details),
		model.CreatedAt,
		model.ExpiresAt,
	)
}
