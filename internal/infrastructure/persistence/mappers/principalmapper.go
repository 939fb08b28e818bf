package mappers

import (
	"fmt"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
)

// PrincipalMapper handles the conversion between principal entities and
// their two persistence models
type PrincipalMapper interface {
	OperatorToModel(o *principal.Operator) *models.OperatorModel
	OperatorToEntity(model *models.OperatorModel) (*principal.Operator, error)
	OperatorsToEntities(models []*models.OperatorModel) ([]*principal.Operator, error)

	CustomerToModel(c *principal.Customer) *models.CustomerModel
	CustomerToEntity(model *models.CustomerModel) (*principal.Customer, error)
	CustomersToEntities(models []*models.CustomerModel) ([]*principal.Customer, error)
}

// PrincipalMapperImpl is the concrete implementation of PrincipalMapper
type PrincipalMapperImpl struct{}

// NewPrincipalMapper creates a new principal mapper
func NewPrincipalMapper() PrincipalMapper {
	return &PrincipalMapperImpl{}
}

func (m *PrincipalMapperImpl) OperatorToModel(o *principal.Operator) *models.OperatorModel {
	if o == nil {
		return nil
	}
	d := o.Data()
	return &models.OperatorModel{
		ID:                d.ID,
		UUID:              d.UUID,
		Username:          d.Username,
		Email:             d.Email,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		PasswordHash:      d.PasswordHash,
		RoleID:            d.RoleID,
		IsActive:          d.IsActive,
		EmailVerifiedAt:   d.EmailVerifiedAt,
		VerificationToken: d.VerificationToken,
		DeletedAt:         d.DeletedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (m *PrincipalMapperImpl) OperatorToEntity(model *models.OperatorModel) (*principal.Operator, error) {
	if model == nil {
		return nil, nil
	}
	o, err := principal.ReconstructOperator(principal.AccountData{
		ID:                model.ID,
		UUID:              model.UUID,
		Username:          model.Username,
		Email:             model.Email,
		FirstName:         model.FirstName,
		LastName:          model.LastName,
		PasswordHash:      model.PasswordHash,
		RoleID:            model.RoleID,
		IsActive:          model.IsActive,
		EmailVerifiedAt:   model.EmailVerifiedAt,
		VerificationToken: model.VerificationToken,
		DeletedAt:         model.DeletedAt,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct operator: %w", err)
	}
	return o, nil
}

func (m *PrincipalMapperImpl) OperatorsToEntities(ms []*models.OperatorModel) ([]*principal.Operator, error) {
	out := make([]*principal.Operator, 0, len(ms))
	for _, model := range ms {
		o, err := m.OperatorToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *PrincipalMapperImpl) CustomerToModel(c *principal.Customer) *models.CustomerModel {
	if c == nil {
		return nil
	}
	d := c.Data()
	return &models.CustomerModel{
		ID:                d.ID,
		UUID:              d.UUID,
		Username:          d.Username,
		Email:             d.Email,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		PasswordHash:      d.PasswordHash,
		RoleID:            d.RoleID,
		ActivePlanID:      c.ActivePlanID(),
		IsActive:          d.IsActive,
		EmailVerifiedAt:   d.EmailVerifiedAt,
		VerificationToken: d.VerificationToken,
		DeletedAt:         d.DeletedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (m *PrincipalMapperImpl) CustomerToEntity(model *models.CustomerModel) (*principal.Customer, error) {
	if model == nil {
		return nil, nil
	}
	c, err := principal.ReconstructCustomer(principal.AccountData{
		ID:                model.ID,
		UUID:              model.UUID,
		Username:          model.Username,
		Email:             model.Email,
		FirstName:         model.FirstName,
		LastName:          model.LastName,
		PasswordHash:      model.PasswordHash,
		RoleID:            model.RoleID,
		IsActive:          model.IsActive,
		EmailVerifiedAt:   model.EmailVerifiedAt,
		VerificationToken: model.VerificationToken,
		DeletedAt:         model.DeletedAt,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}, model.ActivePlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct customer: %w", err)
	}
	return c, nil
}

func (m *PrincipalMapperImpl) CustomersToEntities(ms []*models.CustomerModel) ([]*principal.Customer, error) {
	out := make([]*principal.Customer, 0, len(ms))
	for _, model := range ms {
		c, err := m.CustomerToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
