package auth

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func testCustomer(t *testing.T, id uint, active bool) *principal.Customer {
	t.Helper()
	verified := testNow
	c, err := principal.ReconstructCustomer(principal.AccountData{
		ID:              id,
		UUID:            "cust-uuid",
		Username:        "alice",
		Email:           "alice@example.com",
		PasswordHash:    "stored-hash",
		IsActive:        active,
		EmailVerifiedAt: &verified,
	}, nil)
	require.NoError(t, err)
	return c
}

// memTokens is an in-memory token table enforcing both unique indexes
type memTokens struct {
	mockTokenRepository
	rows   []*token.AuthToken
	nextID uint
}

func newMemTokens() *memTokens {
	m := &memTokens{}
	m.CreateFunc = func(ctx context.Context, t *token.AuthToken) error {
		for _, r := range m.rows {
			if r.TokenHash() == t.TokenHash() {
				return token.ErrHashCollision
			}
			if r.PrincipalKind() == t.PrincipalKind() && r.PrincipalID() == t.PrincipalID() && r.Slot() == t.Slot() {
				return token.ErrSlotTaken
			}
		}
		m.nextID++
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
		m.rows = append(m.rows, t)
		return nil
	}
	m.GetByHashFunc = func(ctx context.Context, hash string) (*token.AuthToken, error) {
		for _, r := range m.rows {
			if r.TokenHash() == hash {
				return r, nil
			}
		}
		return nil, nil
	}
	m.CountLiveFunc = func(ctx context.Context, kind principal.Kind, id uint, now time.Time) (int64, error) {
		var n int64
		for _, r := range m.rows {
			if r.PrincipalKind() == kind && r.PrincipalID() == id && r.ExpiresAt().After(now) {
				n++
			}
		}
		return n, nil
	}
	m.UsedSlotsFunc = func(ctx context.Context, kind principal.Kind, id uint) ([]int, error) {
		var slots []int
		for _, r := range m.rows {
			if r.PrincipalKind() == kind && r.PrincipalID() == id {
				slots = append(slots, r.Slot())
			}
		}
		return slots, nil
	}
	m.DeleteExpiredFunc = func(ctx context.Context, kind principal.Kind, id uint, now time.Time) (int64, error) {
		kept := m.rows[:0]
		var n int64
		for _, r := range m.rows {
			if r.PrincipalKind() == kind && r.PrincipalID() == id && !r.ExpiresAt().After(now) {
				n++
				continue
			}
			kept = append(kept, r)
		}
		m.rows = kept
		return n, nil
	}
	m.DeleteFunc = func(ctx context.Context, id uint) error {
		kept := m.rows[:0]
		for _, r := range m.rows {
			if r.ID() != id {
				kept = append(kept, r)
			}
		}
		m.rows = kept
		return nil
	}
	m.DeleteByPrincipalFunc = func(ctx context.Context, kind principal.Kind, id uint) (int64, error) {
		kept := m.rows[:0]
		var n int64
		for _, r := range m.rows {
			if r.PrincipalKind() == kind && r.PrincipalID() == id {
				n++
				continue
			}
			kept = append(kept, r)
		}
		m.rows = kept
		return n, nil
	}
	return m
}

func newTestStore(tokens token.Repository, customers principal.CustomerRepository, gen TokenGenerator) *TokenStore {
	s := NewTokenStore(
		tokens,
		&mockOperatorRepository{},
		customers,
		gen,
		nil,
		db.NopTransactor{},
		StoreConfig{MaxLive: 5, Validity: 72 * time.Hour},
		logger.NewNopLogger(),
	)
	s.now = biztime.Fixed(testNow)
	return s
}

func TestTokenStore_Issue_LimitAndSlotReuse(t *testing.T) {
	tokens := newMemTokens()
	gen := &sequenceGenerator{plains: []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6"}}
	store := newTestStore(tokens, &mockCustomerRepository{}, gen)
	c := testCustomer(t, 1, true)
	ctx := context.Background()

	var issued []*token.AuthToken
	for i := 0; i < 5; i++ {
		tok, plain, err := store.Issue(ctx, c, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, plain)
		assert.Equal(t, i, tok.Slot())
		assert.Equal(t, testNow.Add(72*time.Hour), tok.ExpiresAt())
		issued = append(issued, tok)
	}

	_, _, err := store.Issue(ctx, c, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeRateLimited))

	require.NoError(t, store.Revoke(ctx, issued[2]))

	tok, _, err := store.Issue(ctx, c, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, tok.Slot())
}

func TestTokenStore_Issue_PurgesExpired(t *testing.T) {
	tokens := newMemTokens()
	gen := &sequenceGenerator{plains: []string{"a", "b", "c", "d", "e", "f"}}
	store := newTestStore(tokens, &mockCustomerRepository{}, gen)
	c := testCustomer(t, 1, true)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := store.Issue(ctx, c, nil)
		require.NoError(t, err)
	}

	store.now = biztime.Fixed(testNow.Add(72 * time.Hour))
	tok, _, err := store.Issue(ctx, c, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tok.Slot())
	assert.Len(t, tokens.rows, 1)
}

func TestTokenStore_Issue_SlotConflictIsRateLimited(t *testing.T) {
	repo := &mockTokenRepository{
		CreateFunc: func(ctx context.Context, t *token.AuthToken) error {
			return token.ErrSlotTaken
		},
	}
	store := newTestStore(repo, &mockCustomerRepository{}, &sequenceGenerator{plains: []string{"x"}})

	_, _, err := store.Issue(context.Background(), testCustomer(t, 1, true), nil)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeRateLimited))
}

func TestTokenStore_Issue_RetriesHashCollision(t *testing.T) {
	tokens := newMemTokens()
	gen := &sequenceGenerator{plains: []string{"dup", "dup", "fresh"}}
	store := newTestStore(tokens, &mockCustomerRepository{}, gen)
	ctx := context.Background()

	_, _, err := store.Issue(ctx, testCustomer(t, 1, true), nil)
	require.NoError(t, err)

	_, plain, err := store.Issue(ctx, testCustomer(t, 2, true), nil)
	require.NoError(t, err)
	assert.Equal(t, "fresh", plain)
	assert.Equal(t, 3, gen.calls)
}

func TestTokenStore_Issue_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := &mockTokenRepository{
		CreateFunc: func(ctx context.Context, t *token.AuthToken) error {
			return token.ErrHashCollision
		},
	}
	gen := &sequenceGenerator{plains: []string{"x"}}
	store := newTestStore(repo, &mockCustomerRepository{}, gen)

	_, _, err := store.Issue(context.Background(), testCustomer(t, 1, true), nil)

	require.Error(t, err)
	assert.False(t, errors.IsAppError(err))
	assert.Equal(t, maxIssueAttempts, gen.calls)
}

func TestTokenStore_Resolve(t *testing.T) {
	tokens := newMemTokens()
	gen := &sequenceGenerator{plains: []string{"plain-1"}}
	active := testCustomer(t, 1, true)
	customers := &mockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*principal.Customer, error) {
			return active, nil
		},
	}
	store := newTestStore(tokens, customers, gen)
	ctx := context.Background()

	issued, plain, err := store.Issue(ctx, active, map[string]any{"agent": "cli"})
	require.NoError(t, err)

	p, tok, err := store.Resolve(ctx, plain)
	require.NoError(t, err)
	assert.Equal(t, active.ID(), p.ID())
	assert.Equal(t, principal.KindCustomer, p.Kind())
	assert.Equal(t, issued.ExpiresAt(), tok.ExpiresAt())

	store.now = biztime.Fixed(issued.ExpiresAt())
	_, tok, err = store.Resolve(ctx, plain)
	require.NoError(t, err)
	assert.Equal(t, issued.ExpiresAt(), tok.ExpiresAt())

	store.now = biztime.Fixed(issued.ExpiresAt().Add(time.Microsecond))
	_, _, err = store.Resolve(ctx, plain)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnauthorized))
}

func TestTokenStore_Resolve_Unauthorized(t *testing.T) {
	tokens := newMemTokens()
	gen := &sequenceGenerator{plains: []string{"plain"}}
	ctx := context.Background()

	tests := []struct {
		name     string
		customer *principal.Customer
		present  string
	}{
		{"empty token", testCustomer(t, 1, true), ""},
		{"unknown token", testCustomer(t, 1, true), "nope"},
		{"suspended owner", testCustomer(t, 1, false), "plain"},
		{"missing owner", nil, "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens.rows = nil
			customers := &mockCustomerRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*principal.Customer, error) {
					return tt.customer, nil
				},
			}
			store := newTestStore(tokens, customers, gen)
			_, _, err := store.Issue(ctx, testCustomer(t, 1, true), nil)
			require.NoError(t, err)

			_, _, err = store.Resolve(ctx, tt.present)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeUnauthorized))
		})
	}
}

func TestTokenStore_Resolve_AfterSuspension(t *testing.T) {
	tokens := newMemTokens()
	customer := testCustomer(t, 1, true)
	customers := &mockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*principal.Customer, error) {
			return customer, nil
		},
	}
	store := newTestStore(tokens, customers, &sequenceGenerator{plains: []string{"plain"}})
	ctx := context.Background()

	_, plain, err := store.Issue(ctx, customer, nil)
	require.NoError(t, err)
	_, _, err = store.Resolve(ctx, plain)
	require.NoError(t, err)

	customer.SetActive(false, testNow)
	require.Len(t, tokens.rows, 1)

	_, _, err = store.Resolve(ctx, plain)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}

func TestTokenStore_Resolve_RepositoryError(t *testing.T) {
	repo := &mockTokenRepository{
		GetByHashFunc: func(ctx context.Context, hash string) (*token.AuthToken, error) {
			return nil, stderrors.New("connection reset")
		},
	}
	store := newTestStore(repo, &mockCustomerRepository{}, &sequenceGenerator{plains: []string{"x"}})

	_, _, err := store.Resolve(context.Background(), "x")

	require.Error(t, err)
	assert.False(t, errors.IsAppError(err))
}

func TestTokenStore_RevokeIsIdempotent(t *testing.T) {
	tokens := newMemTokens()
	gen := &sequenceGenerator{plains: []string{"a", "b"}}
	store := newTestStore(tokens, &mockCustomerRepository{}, gen)
	c := testCustomer(t, 1, true)
	ctx := context.Background()

	tok, _, err := store.Issue(ctx, c, nil)
	require.NoError(t, err)
	_, _, err = store.Issue(ctx, c, nil)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, tok))
	require.NoError(t, store.Revoke(ctx, tok))
	assert.Len(t, tokens.rows, 1)

	require.NoError(t, store.RevokeAll(ctx, c))
	require.NoError(t, store.RevokeAll(ctx, c))
	assert.Empty(t, tokens.rows)
}
