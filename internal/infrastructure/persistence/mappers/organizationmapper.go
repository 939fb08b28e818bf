package mappers

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/infrastructure/persistence/models"
)

// OrganizationMapper converts organizations and memberships
type OrganizationMapper interface {
	ToModel(org *organization.Organization) *models.OrganizationModel
	ToEntity(model *models.OrganizationModel) (*organization.Organization, error)
	ToEntities(models []*models.OrganizationModel) ([]*organization.Organization, error)

	MembershipToModel(m *organization.Membership) *models.MembershipModel
	MembershipToEntity(model *models.MembershipModel) (*organization.Membership, error)
}

type OrganizationMapperImpl struct{}

func NewOrganizationMapper() OrganizationMapper {
	return &OrganizationMapperImpl{}
}

func (m *OrganizationMapperImpl) ToModel(org *organization.Organization) *models.OrganizationModel {
	if org == nil {
		return nil
	}
	d := org.Data()
	return &models.OrganizationModel{
		ID:               d.ID,
		UID:              d.UID,
		Name:             d.Name,
		NameKey:          d.NameKey,
		AdminID:          d.AdminID,
		RegistrationType: d.RegistrationType.String(),
		IsActive:         d.IsActive,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		DeletedAt:        toDeletedAt(d.DeletedAt),
	}
}

func (m *OrganizationMapperImpl) ToEntity(model *models.OrganizationModel) (*organization.Organization, error) {
	if model == nil {
		return nil, nil
	}
	return organization.ReconstructOrganization(organization.OrganizationData{
		ID:               model.ID,
		UID:              model.UID,
		Name:             model.Name,
		NameKey:          model.NameKey,
		AdminID:          model.AdminID,
		RegistrationType: organization.RegistrationType(model.RegistrationType),
		IsActive:         model.IsActive,
		DeletedAt:        fromDeletedAt(model.DeletedAt),
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
}

func (m *OrganizationMapperImpl) ToEntities(ms []*models.OrganizationModel) ([]*organization.Organization, error) {
	out := make([]*organization.Organization, 0, len(ms))
	for _, model := range ms {
		org, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, org)
	}
	return out, nil
}

func (m *OrganizationMapperImpl) MembershipToModel(mb *organization.Membership) *models.MembershipModel {
	if mb == nil {
		return nil
	}
	return &models.MembershipModel{
		ID:             mb.ID(),
		UID:            mb.UID(),
		OrganizationID: mb.OrganizationID(),
		CustomerID:     mb.CustomerID(),
		RoleID:         mb.RoleID(),
		IsActive:       mb.IsActive(),
		CreatedAt:      mb.CreatedAt(),
		UpdatedAt:      mb.UpdatedAt(),
		DeletedAt:      toDeletedAt(mb.DeletedAt()),
	}
}

func (m *OrganizationMapperImpl) MembershipToEntity(model *models.MembershipModel) (*organization.Membership, error) {
	if model == nil {
		return nil, nil
	}
	return organization.ReconstructMembership(
		model.ID,
		model.UID,
		model.OrganizationID,
		model.CustomerID,
		model.RoleID,
		model.IsActive,
		fromDeletedAt(model.DeletedAt),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func toDeletedAt(t *time.Time) gorm.DeletedAt {
	if t == nil {
		return gorm.DeletedAt{}
	}
	return gorm.DeletedAt{Time: *t, Valid: true}
}

func fromDeletedAt(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
