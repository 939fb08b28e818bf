package dto

import (
	"time"

	"github.com/orris-inc/warden/internal/domain/organization"
)

type CreateOrganizationRequest struct {
	OrgName          string `json:"org_name" binding:"required,min=1,max=100"`
	RegistrationType string `json:"registration_type" binding:"required"`
}

type JoinOrganizationRequest struct {
	OrgUID string `json:"orguid" binding:"required"`
}

// MemberRequest targets one membership of the current organization
type MemberRequest struct {
	MemberUID string `json:"member_uid" binding:"required"`
}

type AssignMemberRoleRequest struct {
	MemberUID string `json:"member_uid" binding:"required"`
	Role      string `json:"role" binding:"required"`
}

type SetMemberPermissionsRequest struct {
	MemberUID   string   `json:"member_uid" binding:"required"`
	Permissions []string `json:"permissions"`
}

type OrganizationResponse struct {
	OrgUID           string    `json:"orguid"`
	OrgName          string    `json:"org_name"`
	RegistrationType string    `json:"registration_type"`
	IsActive         bool      `json:"is_active"`
	IsAdmin          bool      `json:"is_admin"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type MembershipResponse struct {
	MemberUID  string    `json:"member_uid"`
	CustomerID uint      `json:"customer_id"`
	RoleID     uint      `json:"role_id"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToOrganizationResponse renders org as seen by the customer viewerID
func ToOrganizationResponse(org *organization.Organization, viewerID uint) OrganizationResponse {
	return OrganizationResponse{
		OrgUID:           org.UID(),
		OrgName:          org.Name(),
		RegistrationType: org.RegistrationType().String(),
		IsActive:         org.IsActive(),
		IsAdmin:          org.IsAdmin(viewerID),
		CreatedAt:        org.CreatedAt(),
		UpdatedAt:        org.UpdatedAt(),
	}
}

func ToOrganizationResponses(orgs []*organization.Organization, viewerID uint) []OrganizationResponse {
	out := make([]OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, ToOrganizationResponse(org, viewerID))
	}
	return out
}

func ToMembershipResponse(m *organization.Membership) MembershipResponse {
	return MembershipResponse{
		MemberUID:  m.UID(),
		CustomerID: m.CustomerID(),
		RoleID:     m.RoleID(),
		IsActive:   m.IsActive(),
		CreatedAt:  m.CreatedAt(),
		UpdatedAt:  m.UpdatedAt(),
	}
}

func ToMembershipResponses(ms []*organization.Membership) []MembershipResponse {
	out := make([]MembershipResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMembershipResponse(m))
	}
	return out
}
