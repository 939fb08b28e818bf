package permission

import (
	"context"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
)

type mockRoleRepository struct {
	CreateFunc       func(ctx context.Context, role *permission.Role) error
	GetByIDFunc      func(ctx context.Context, id uint) (*permission.Role, error)
	GetByUIDFunc     func(ctx context.Context, uid string) (*permission.Role, error)
	GetByNameFunc    func(ctx context.Context, scope permission.Scope, name string) (*permission.Role, error)
	GetSuperuserFunc func(ctx context.Context) (*permission.Role, error)
	ListFunc         func(ctx context.Context, scope permission.Scope, includeSuperuser bool) ([]*permission.Role, error)
}

func (m *mockRoleRepository) Create(ctx context.Context, role *permission.Role) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, role)
	}
	return role.SetID(100)
}

func (m *mockRoleRepository) GetByID(ctx context.Context, id uint) (*permission.Role, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRoleRepository) GetByUID(ctx context.Context, uid string) (*permission.Role, error) {
	if m.GetByUIDFunc != nil {
		return m.GetByUIDFunc(ctx, uid)
	}
	return nil, nil
}

func (m *mockRoleRepository) GetByName(ctx context.Context, scope permission.Scope, name string) (*permission.Role, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, scope, name)
	}
	return nil, nil
}

func (m *mockRoleRepository) GetSuperuser(ctx context.Context) (*permission.Role, error) {
	if m.GetSuperuserFunc != nil {
		return m.GetSuperuserFunc(ctx)
	}
	return nil, nil
}

func (m *mockRoleRepository) List(ctx context.Context, scope permission.Scope, includeSuperuser bool) ([]*permission.Role, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope, includeSuperuser)
	}
	return nil, nil
}

type mockPermissionRepository struct {
	ListByScopeFunc              func(ctx context.Context, scope permission.ScopeType) ([]*permission.Permission, error)
	GetByCodenamesFunc           func(ctx context.Context, scope permission.ScopeType, codenames []string) ([]*permission.Permission, error)
	RoleCodenamesFunc            func(ctx context.Context, roleID uint) ([]string, error)
	ReplaceRolePermissionsFunc   func(ctx context.Context, roleID uint, ids []uint) error
	MemberCodenamesFunc          func(ctx context.Context, membershipID uint) ([]string, error)
	ReplaceMemberPermissionsFunc func(ctx context.Context, membershipID uint, ids []uint) error
}

func (m *mockPermissionRepository) CreateIfMissing(ctx context.Context, p *permission.Permission) (bool, error) {
	return false, nil
}

func (m *mockPermissionRepository) ListByScope(ctx context.Context, scope permission.ScopeType) ([]*permission.Permission, error) {
	if m.ListByScopeFunc != nil {
		return m.ListByScopeFunc(ctx, scope)
	}
	return nil, nil
}

func (m *mockPermissionRepository) GetByCodenames(ctx context.Context, scope permission.ScopeType, codenames []string) ([]*permission.Permission, error) {
	if m.GetByCodenamesFunc != nil {
		return m.GetByCodenamesFunc(ctx, scope, codenames)
	}
	return nil, nil
}

func (m *mockPermissionRepository) RoleCodenames(ctx context.Context, roleID uint) ([]string, error) {
	if m.RoleCodenamesFunc != nil {
		return m.RoleCodenamesFunc(ctx, roleID)
	}
	return nil, nil
}

func (m *mockPermissionRepository) ReplaceRolePermissions(ctx context.Context, roleID uint, ids []uint) error {
	if m.ReplaceRolePermissionsFunc != nil {
		return m.ReplaceRolePermissionsFunc(ctx, roleID, ids)
	}
	return nil
}

func (m *mockPermissionRepository) MemberCodenames(ctx context.Context, membershipID uint) ([]string, error) {
	if m.MemberCodenamesFunc != nil {
		return m.MemberCodenamesFunc(ctx, membershipID)
	}
	return nil, nil
}

func (m *mockPermissionRepository) ReplaceMemberPermissions(ctx context.Context, membershipID uint, ids []uint) error {
	if m.ReplaceMemberPermissionsFunc != nil {
		return m.ReplaceMemberPermissionsFunc(ctx, membershipID, ids)
	}
	return nil
}

type mockOperatorRepository struct {
	principal.OperatorRepository
	UpdateFunc func(ctx context.Context, o *principal.Operator) error
}

func (m *mockOperatorRepository) Update(ctx context.Context, o *principal.Operator) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, o)
	}
	return nil
}

type mockCustomerRepository struct {
	principal.CustomerRepository
	UpdateFunc func(ctx context.Context, c *principal.Customer) error
}

func (m *mockCustomerRepository) Update(ctx context.Context, c *principal.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}
