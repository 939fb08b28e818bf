package auth

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

func testOperator(t *testing.T, active, verified bool) *principal.Operator {
	t.Helper()
	d := principal.AccountData{
		ID:           9,
		UUID:         "op-uuid",
		Username:     "root",
		Email:        "root@example.com",
		PasswordHash: "stored-hash",
		IsActive:     active,
	}
	if verified {
		at := testNow
		d.EmailVerifiedAt = &at
	}
	o, err := principal.ReconstructOperator(d)
	require.NoError(t, err)
	return o
}

func okIssuer(t *testing.T) *mockIssuer {
	return &mockIssuer{
		IssueFunc: func(ctx context.Context, p principal.Principal, meta map[string]any) (*token.AuthToken, string, error) {
			tok, err := token.NewAuthToken(p.Kind(), p.ID(), 0, "h", meta, testNow, 72*time.Hour)
			require.NoError(t, err)
			return tok, "plain-token", nil
		},
	}
}

func TestLoginUseCase_Success(t *testing.T) {
	var lookedUp string
	operators := &mockOperatorRepository{
		GetByLoginFunc: func(ctx context.Context, login string) (*principal.Operator, error) {
			lookedUp = login
			return testOperator(t, true, true), nil
		},
	}
	hasher := &mockHasher{
		VerifyFunc: func(password, hash string) error {
			assert.Equal(t, "s3cret", password)
			assert.Equal(t, "stored-hash", hash)
			return nil
		},
	}

	uc := NewLoginUseCase(operators, &mockCustomerRepository{}, hasher, okIssuer(t), logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), LoginCommand{
		Kind:            principal.KindOperator,
		UsernameOrEmail: " Root@Example.com ",
		Password:        "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "root@example.com", lookedUp)
	assert.Equal(t, "plain-token", result.Token)
	assert.Equal(t, uint(9), result.Principal.ID())
	assert.False(t, result.ExpiresAt.IsZero())
}

func TestLoginUseCase_Rehash(t *testing.T) {
	t.Run("outdated hash is replaced", func(t *testing.T) {
		var saved *principal.Operator
		operators := &mockOperatorRepository{
			GetByLoginFunc: func(ctx context.Context, login string) (*principal.Operator, error) {
				return testOperator(t, true, true), nil
			},
			UpdateFunc: func(ctx context.Context, o *principal.Operator) error {
				saved = o
				return nil
			},
		}
		hasher := &mockHasher{
			NeedsRehashFunc: func(hash string) bool { return hash == "stored-hash" },
		}

		uc := NewLoginUseCase(operators, &mockCustomerRepository{}, hasher, okIssuer(t), logger.NewNopLogger())
		result, err := uc.Execute(context.Background(), LoginCommand{
			Kind:            principal.KindOperator,
			UsernameOrEmail: "root",
			Password:        "s3cret",
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "hashed:s3cret", saved.PasswordHash())
		assert.Equal(t, "hashed:s3cret", result.Principal.PasswordHash())
	})

	t.Run("current hash is kept", func(t *testing.T) {
		customers := &mockCustomerRepository{
			GetByLoginFunc: func(ctx context.Context, login string) (*principal.Customer, error) {
				return testCustomer(t, 1, true), nil
			},
			UpdateFunc: func(ctx context.Context, c *principal.Customer) error {
				t.Fatal("customer must not be updated")
				return nil
			},
		}

		uc := NewLoginUseCase(&mockOperatorRepository{}, customers, &mockHasher{}, okIssuer(t), logger.NewNopLogger())
		_, err := uc.Execute(context.Background(), LoginCommand{Kind: principal.KindCustomer, UsernameOrEmail: "alice"})

		require.NoError(t, err)
	})

	t.Run("storage failure does not block login", func(t *testing.T) {
		customers := &mockCustomerRepository{
			GetByLoginFunc: func(ctx context.Context, login string) (*principal.Customer, error) {
				return testCustomer(t, 1, true), nil
			},
			UpdateFunc: func(ctx context.Context, c *principal.Customer) error {
				return stderrors.New("database is read-only")
			},
		}
		hasher := &mockHasher{NeedsRehashFunc: func(string) bool { return true }}

		uc := NewLoginUseCase(&mockOperatorRepository{}, customers, hasher, okIssuer(t), logger.NewNopLogger())
		result, err := uc.Execute(context.Background(), LoginCommand{Kind: principal.KindCustomer, UsernameOrEmail: "alice"})

		require.NoError(t, err)
		assert.Equal(t, "plain-token", result.Token)
	})
}

func TestLoginUseCase_Failures(t *testing.T) {
	wrongPassword := &mockHasher{VerifyFunc: func(string, string) error { return stderrors.New("password verification failed") }}

	tests := []struct {
		name     string
		operator *principal.Operator
		hasher   *mockHasher
		wantHint string
	}{
		{"unknown login", nil, &mockHasher{}, "verification_failed"},
		{"wrong password", testOperator(t, true, true), wrongPassword, "verification_failed"},
		{"unverified email", testOperator(t, true, false), &mockHasher{}, "verification_required"},
		{"suspended", testOperator(t, false, true), &mockHasher{}, "suspended"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			operators := &mockOperatorRepository{
				GetByLoginFunc: func(ctx context.Context, login string) (*principal.Operator, error) {
					return tt.operator, nil
				},
			}
			issuer := &mockIssuer{
				IssueFunc: func(ctx context.Context, p principal.Principal, meta map[string]any) (*token.AuthToken, string, error) {
					t.Fatal("token must not be issued")
					return nil, "", nil
				},
			}

			uc := NewLoginUseCase(operators, &mockCustomerRepository{}, tt.hasher, issuer, logger.NewNopLogger())
			_, err := uc.Execute(context.Background(), LoginCommand{
				Kind:            principal.KindOperator,
				UsernameOrEmail: "root",
				Password:        "whatever",
			})

			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
			assert.Equal(t, tt.wantHint, appErr.Hint)
		})
	}
}

func TestLoginUseCase_CustomerRateLimited(t *testing.T) {
	customers := &mockCustomerRepository{
		GetByLoginFunc: func(ctx context.Context, login string) (*principal.Customer, error) {
			return testCustomer(t, 1, true), nil
		},
	}
	issuer := &mockIssuer{
		IssueFunc: func(ctx context.Context, p principal.Principal, meta map[string]any) (*token.AuthToken, string, error) {
			return nil, "", tooManyTokens(5)
		},
	}

	uc := NewLoginUseCase(&mockOperatorRepository{}, customers, &mockHasher{}, issuer, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), LoginCommand{Kind: principal.KindCustomer, UsernameOrEmail: "alice"})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeRateLimited))
}
