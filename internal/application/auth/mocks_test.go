package auth

import (
	"context"
	"time"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
)

type mockTokenRepository struct {
	CreateFunc            func(ctx context.Context, t *token.AuthToken) error
	GetByHashFunc         func(ctx context.Context, hash string) (*token.AuthToken, error)
	CountLiveFunc         func(ctx context.Context, kind principal.Kind, id uint, now time.Time) (int64, error)
	UsedSlotsFunc         func(ctx context.Context, kind principal.Kind, id uint) ([]int, error)
	DeleteExpiredFunc     func(ctx context.Context, kind principal.Kind, id uint, now time.Time) (int64, error)
	DeleteFunc            func(ctx context.Context, id uint) error
	DeleteByPrincipalFunc func(ctx context.Context, kind principal.Kind, id uint) (int64, error)
}

func (m *mockTokenRepository) Create(ctx context.Context, t *token.AuthToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTokenRepository) GetByHash(ctx context.Context, hash string) (*token.AuthToken, error) {
	if m.GetByHashFunc != nil {
		return m.GetByHashFunc(ctx, hash)
	}
	return nil, nil
}

func (m *mockTokenRepository) CountLive(ctx context.Context, kind principal.Kind, id uint, now time.Time) (int64, error) {
	if m.CountLiveFunc != nil {
		return m.CountLiveFunc(ctx, kind, id, now)
	}
	return 0, nil
}

func (m *mockTokenRepository) UsedSlots(ctx context.Context, kind principal.Kind, id uint) ([]int, error) {
	if m.UsedSlotsFunc != nil {
		return m.UsedSlotsFunc(ctx, kind, id)
	}
	return nil, nil
}

func (m *mockTokenRepository) DeleteExpired(ctx context.Context, kind principal.Kind, id uint, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, kind, id, now)
	}
	return 0, nil
}

func (m *mockTokenRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTokenRepository) DeleteByPrincipal(ctx context.Context, kind principal.Kind, id uint) (int64, error) {
	if m.DeleteByPrincipalFunc != nil {
		return m.DeleteByPrincipalFunc(ctx, kind, id)
	}
	return 0, nil
}

type mockOperatorRepository struct {
	GetByIDFunc    func(ctx context.Context, id uint) (*principal.Operator, error)
	GetByLoginFunc func(ctx context.Context, login string) (*principal.Operator, error)
	UpdateFunc     func(ctx context.Context, o *principal.Operator) error
}

func (m *mockOperatorRepository) Create(ctx context.Context, o *principal.Operator) error {
	return nil
}

func (m *mockOperatorRepository) GetByID(ctx context.Context, id uint) (*principal.Operator, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockOperatorRepository) GetByUUID(ctx context.Context, uuid string) (*principal.Operator, error) {
	return nil, nil
}

func (m *mockOperatorRepository) GetByLogin(ctx context.Context, login string) (*principal.Operator, error) {
	if m.GetByLoginFunc != nil {
		return m.GetByLoginFunc(ctx, login)
	}
	return nil, nil
}

func (m *mockOperatorRepository) GetByVerificationToken(ctx context.Context, t string) (*principal.Operator, error) {
	return nil, nil
}

func (m *mockOperatorRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (m *mockOperatorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockOperatorRepository) Update(ctx context.Context, o *principal.Operator) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, o)
	}
	return nil
}

func (m *mockOperatorRepository) List(ctx context.Context, f principal.ListFilter) ([]*principal.Operator, int64, error) {
	return nil, 0, nil
}

func (m *mockOperatorRepository) HasSuperuser(ctx context.Context) (bool, error) {
	return false, nil
}

type mockCustomerRepository struct {
	GetByIDFunc    func(ctx context.Context, id uint) (*principal.Customer, error)
	GetByLoginFunc func(ctx context.Context, login string) (*principal.Customer, error)
	UpdateFunc     func(ctx context.Context, c *principal.Customer) error
}

func (m *mockCustomerRepository) Create(ctx context.Context, c *principal.Customer) error {
	return nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*principal.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCustomerRepository) GetByUUID(ctx context.Context, uuid string) (*principal.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) GetByLogin(ctx context.Context, login string) (*principal.Customer, error) {
	if m.GetByLoginFunc != nil {
		return m.GetByLoginFunc(ctx, login)
	}
	return nil, nil
}

func (m *mockCustomerRepository) GetByVerificationToken(ctx context.Context, t string) (*principal.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
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
	return nil, 0, nil
}

// sequenceGenerator returns the configured plain tokens in order and hashes
// by prefixing "h:"
type sequenceGenerator struct {
	plains []string
	calls  int
}

func (g *sequenceGenerator) Generate() (string, string, error) {
	p := g.plains[g.calls%len(g.plains)]
	g.calls++
	return p, g.Hash(p), nil
}

func (g *sequenceGenerator) Hash(plain string) string {
	return "h:" + plain
}

type mockHasher struct {
	VerifyFunc      func(password, hash string) error
	NeedsRehashFunc func(hash string) bool
}

func (m *mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, hash string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(password, hash)
	}
	return nil
}

func (m *mockHasher) NeedsRehash(hash string) bool {
	if m.NeedsRehashFunc != nil {
		return m.NeedsRehashFunc(hash)
	}
	return false
}

type mockIssuer struct {
	IssueFunc func(ctx context.Context, p principal.Principal, meta map[string]any) (*token.AuthToken, string, error)
}

func (m *mockIssuer) Issue(ctx context.Context, p principal.Principal, meta map[string]any) (*token.AuthToken, string, error) {
	return m.IssueFunc(ctx, p, meta)
}
