package dto

import (
	"time"

	"github.com/orris-inc/warden/internal/domain/permission"
)

type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Permissions []string `json:"permissions"`
}

// SetRolePermissionsRequest replaces the whole permission set of a role
type SetRolePermissionsRequest struct {
	Role        string   `json:"role" binding:"required"`
	Permissions []string `json:"permissions"`
}

type PermissionResponse struct {
	Codename string `json:"codename"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	Scope    string `json:"scope"`
}

type RoleResponse struct {
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Scope       string    `json:"scope"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToPermissionResponses(perms []*permission.Permission) []PermissionResponse {
	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionResponse{
			Codename: p.Codename(),
			Name:     p.Name(),
			Type:     p.Type(),
			Scope:    p.Scope().String(),
		})
	}
	return out
}

// ToRoleResponse renders role with its resolved permission set
func ToRoleResponse(role *permission.Role, set permission.Set) RoleResponse {
	codenames := set.Codenames()
	if codenames == nil {
		codenames = []string{}
	}
	return RoleResponse{
		UID:         role.UID(),
		Name:        role.Name(),
		Kind:        string(role.Kind()),
		Scope:       string(role.Scope().Type),
		Permissions: codenames,
		CreatedAt:   role.CreatedAt(),
		UpdatedAt:   role.UpdatedAt(),
	}
}
