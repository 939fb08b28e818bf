package principal

import (
	"context"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
)

type mockOperatorRepository struct {
	principal.OperatorRepository
	CreateFunc                 func(ctx context.Context, o *principal.Operator) error
	GetByUUIDFunc              func(ctx context.Context, uuid string) (*principal.Operator, error)
	GetByLoginFunc             func(ctx context.Context, login string) (*principal.Operator, error)
	GetByVerificationTokenFunc func(ctx context.Context, token string) (*principal.Operator, error)
	ExistsByUsernameFunc       func(ctx context.Context, username string) (bool, error)
	ExistsByEmailFunc          func(ctx context.Context, email string) (bool, error)
	UpdateFunc                 func(ctx context.Context, o *principal.Operator) error
	HasSuperuserFunc           func(ctx context.Context) (bool, error)
	ListFunc                   func(ctx context.Context, f principal.ListFilter) ([]*principal.Operator, int64, error)
}

func (m *mockOperatorRepository) Create(ctx context.Context, o *principal.Operator) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return o.SetID(1)
}

func (m *mockOperatorRepository) GetByUUID(ctx context.Context, uuid string) (*principal.Operator, error) {
	if m.GetByUUIDFunc != nil {
		return m.GetByUUIDFunc(ctx, uuid)
	}
	return nil, nil
}

func (m *mockOperatorRepository) GetByLogin(ctx context.Context, login string) (*principal.Operator, error) {
	if m.GetByLoginFunc != nil {
		return m.GetByLoginFunc(ctx, login)
	}
	return nil, nil
}

func (m *mockOperatorRepository) GetByVerificationToken(ctx context.Context, token string) (*principal.Operator, error) {
	if m.GetByVerificationTokenFunc != nil {
		return m.GetByVerificationTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockOperatorRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username)
	}
	return false, nil
}

func (m *mockOperatorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockOperatorRepository) Update(ctx context.Context, o *principal.Operator) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, o)
	}
	return nil
}

func (m *mockOperatorRepository) List(ctx context.Context, f principal.ListFilter) ([]*principal.Operator, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *mockOperatorRepository) HasSuperuser(ctx context.Context) (bool, error) {
	if m.HasSuperuserFunc != nil {
		return m.HasSuperuserFunc(ctx)
	}
	return false, nil
}

type mockCustomerRepository struct {
	principal.CustomerRepository
	CreateFunc                 func(ctx context.Context, c *principal.Customer) error
	GetByUUIDFunc              func(ctx context.Context, uuid string) (*principal.Customer, error)
	GetByLoginFunc             func(ctx context.Context, login string) (*principal.Customer, error)
	GetByVerificationTokenFunc func(ctx context.Context, token string) (*principal.Customer, error)
	ExistsByUsernameFunc       func(ctx context.Context, username string) (bool, error)
	UpdateFunc                 func(ctx context.Context, c *principal.Customer) error
	ListFunc                   func(ctx context.Context, f principal.ListFilter) ([]*principal.Customer, int64, error)
}

func (m *mockCustomerRepository) Create(ctx context.Context, c *principal.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c.SetID(1)
}

func (m *mockCustomerRepository) GetByUUID(ctx context.Context, uuid string) (*principal.Customer, error) {
	if m.GetByUUIDFunc != nil {
		return m.GetByUUIDFunc(ctx, uuid)
	}
	return nil, nil
}

func (m *mockCustomerRepository) GetByLogin(ctx context.Context, login string) (*principal.Customer, error) {
	if m.GetByLoginFunc != nil {
		return m.GetByLoginFunc(ctx, login)
	}
	return nil, nil
}

func (m *mockCustomerRepository) GetByVerificationToken(ctx context.Context, token string) (*principal.Customer, error) {
	if m.GetByVerificationTokenFunc != nil {
		return m.GetByVerificationTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockCustomerRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username)
	}
	return false, nil
}

func (m *mockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, c *principal.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCustomerRepository) List(ctx context.Context, f principal.ListFilter) ([]*principal.Customer, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) { return "bcrypt:" + password, nil }
func (mockHasher) Verify(password, hash string) error   { return nil }
func (mockHasher) NeedsRehash(hash string) bool         { return false }

type fixedSecrets struct {
	plain string
}

func (f fixedSecrets) Generate() (string, string, error) { return f.plain, "sha:" + f.plain, nil }
func (f fixedSecrets) Hash(plain string) string          { return "sha:" + plain }

type mockEmailService struct {
	SendFunc func(to, token string) error
	sent     []string
	resets   []string
}

func (m *mockEmailService) SendVerificationEmail(to, token string) error {
	m.sent = append(m.sent, to+" "+token)
	if m.SendFunc != nil {
		return m.SendFunc(to, token)
	}
	return nil
}

func (m *mockEmailService) SendPasswordResetEmail(to, token string) error {
	m.resets = append(m.resets, to+" "+token)
	if m.SendFunc != nil {
		return m.SendFunc(to, token)
	}
	return nil
}

type mockRoleAssigner struct {
	AssignRoleFunc func(ctx context.Context, actor, target principal.Principal, roleUID string) error
}

func (m *mockRoleAssigner) AssignRole(ctx context.Context, actor, target principal.Principal, roleUID string) error {
	if m.AssignRoleFunc != nil {
		return m.AssignRoleFunc(ctx, actor, target, roleUID)
	}
	return nil
}

type mockSessionRevoker struct {
	revoked []uint
}

func (m *mockSessionRevoker) RevokeAll(ctx context.Context, p principal.Principal) error {
	m.revoked = append(m.revoked, p.ID())
	return nil
}

type mockRoleRepository struct {
	permission.RoleRepository
	superuser *permission.Role
	created   []*permission.Role
}

func (m *mockRoleRepository) GetSuperuser(ctx context.Context) (*permission.Role, error) {
	return m.superuser, nil
}

func (m *mockRoleRepository) Create(ctx context.Context, role *permission.Role) error {
	m.created = append(m.created, role)
	return role.SetID(50)
}
