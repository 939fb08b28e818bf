// Package auth issues, resolves and revokes opaque bearer tokens and runs the
// password login flow for both principal classes.
package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/shared/biztime"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// maxIssueAttempts bounds regeneration after a token hash collision
const maxIssueAttempts = 3

// TokenGenerator produces random plain tokens and the hash stored for them
type TokenGenerator interface {
	Generate() (plain string, hash string, err error)
	Hash(plain string) string
}

// MetadataSanitizer cleans client supplied metadata before it is stored
type MetadataSanitizer interface {
	Sanitize(meta map[string]any) map[string]any
}

// StoreConfig holds the token limits
type StoreConfig struct {
	MaxLive  int
	Validity time.Duration
}

// TokenStore owns the lifecycle of auth tokens. It keeps no state between
// calls; every check reads storage.
type TokenStore struct {
	tokens    token.Repository
	operators principal.OperatorRepository
	customers principal.CustomerRepository
	generator TokenGenerator
	sanitizer MetadataSanitizer
	tx        db.Transactor
	cfg       StoreConfig
	now       biztime.Clock
	logger    logger.Interface
}

func NewTokenStore(
	tokens token.Repository,
	operators principal.OperatorRepository,
	customers principal.CustomerRepository,
	generator TokenGenerator,
	sanitizer MetadataSanitizer,
	tx db.Transactor,
	cfg StoreConfig,
	logger logger.Interface,
) *TokenStore {
	return &TokenStore{
		tokens:    tokens,
		operators: operators,
		customers: customers,
		generator: generator,
		sanitizer: sanitizer,
		tx:        tx,
		cfg:       cfg,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// Issue creates a token for p. Expired tokens of p are purged first; when
// max_live tokens remain the call fails with rate_limited. The returned plain
// token is never stored.
func (s *TokenStore) Issue(ctx context.Context, p principal.Principal, clientMeta map[string]any) (*token.AuthToken, string, error) {
	if p == nil || p.ID() == 0 {
		return nil, "", fmt.Errorf("principal is required")
	}

	details := clientMeta
	if s.sanitizer != nil {
		details = s.sanitizer.Sanitize(clientMeta)
	}

	var (
		issued *token.AuthToken
		plain  string
	)
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		now := s.now()

		purged, err := s.tokens.DeleteExpired(ctx, p.Kind(), p.ID(), now)
		if err != nil {
			return fmt.Errorf("failed to purge expired tokens: %w", err)
		}
		if purged > 0 {
			s.logger.Debugw("purged expired tokens", "kind", p.Kind(), "principal_id", p.ID(), "count", purged)
		}

		live, err := s.tokens.CountLive(ctx, p.Kind(), p.ID(), now)
		if err != nil {
			return fmt.Errorf("failed to count live tokens: %w", err)
		}
		if live >= int64(s.cfg.MaxLive) {
			return tooManyTokens(live)
		}

		used, err := s.tokens.UsedSlots(ctx, p.Kind(), p.ID())
		if err != nil {
			return fmt.Errorf("failed to list token slots: %w", err)
		}
		slot, ok := lowestFreeSlot(used, s.cfg.MaxLive)
		if !ok {
			return tooManyTokens(live)
		}

		for attempt := 1; attempt <= maxIssueAttempts; attempt++ {
			plainToken, hash, err := s.generator.Generate()
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			tok, err := token.NewAuthToken(p.Kind(), p.ID(), slot, hash, details, now, s.cfg.Validity)
			if err != nil {
				return err
			}

			err = s.tokens.Create(ctx, tok)
			switch {
			case err == nil:
				issued, plain = tok, plainToken
				return nil
			case stderrors.Is(err, token.ErrHashCollision):
				s.logger.Warnw("token hash collision, regenerating", "attempt", attempt)
				continue
			case stderrors.Is(err, token.ErrSlotTaken):
				return tooManyTokens(live)
			default:
				return fmt.Errorf("failed to create token: %w", err)
			}
		}
		return fmt.Errorf("failed to generate a unique token after %d attempts", maxIssueAttempts)
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Infow("token issued", "kind", p.Kind(), "principal_id", p.ID(), "slot", issued.Slot())
	return issued, plain, nil
}

// Resolve maps a presented token to its principal. Unknown, expired and
// orphaned tokens, and tokens of suspended or deleted principals, are all
// unauthorized. The expiry is never extended.
func (s *TokenStore) Resolve(ctx context.Context, plain string) (principal.Principal, *token.AuthToken, error) {
	if plain == "" {
		return nil, nil, errors.NewUnauthorizedError("authentication credentials were not provided")
	}

	tok, err := s.tokens.GetByHash(ctx, s.generator.Hash(plain))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if tok == nil {
		return nil, nil, errors.NewUnauthorizedError("invalid token")
	}
	if tok.IsExpired(s.now()) {
		return nil, nil, errors.NewUnauthorizedError("token has expired")
	}

	p, err := s.loadPrincipal(ctx, tok.PrincipalKind(), tok.PrincipalID())
	if err != nil {
		return nil, nil, err
	}
	if p == nil || !p.IsActive() || p.IsDeleted() {
		return nil, nil, errors.NewUnauthorizedError("user inactive or deleted")
	}

	return p, tok, nil
}

// Revoke deletes tok. Revoking an already removed token succeeds.
func (s *TokenStore) Revoke(ctx context.Context, tok *token.AuthToken) error {
	if tok == nil {
		return nil
	}
	if err := s.tokens.Delete(ctx, tok.ID()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAll deletes every token of p
func (s *TokenStore) RevokeAll(ctx context.Context, p principal.Principal) error {
	n, err := s.tokens.DeleteByPrincipal(ctx, p.Kind(), p.ID())
	if err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	s.logger.Infow("tokens revoked", "kind", p.Kind(), "principal_id", p.ID(), "count", n)
	return nil
}

func (s *TokenStore) loadPrincipal(ctx context.Context, kind principal.Kind, id uint) (principal.Principal, error) {
	switch kind {
	case principal.KindOperator:
		o, err := s.operators.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get operator: %w", err)
		}
		if o == nil {
			return nil, nil
		}
		return o, nil
	case principal.KindCustomer:
		c, err := s.customers.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get customer: %w", err)
		}
		if c == nil {
			return nil, nil
		}
		return c, nil
	default:
		return nil, nil
	}
}

func tooManyTokens(live int64) error {
	return errors.NewRateLimitedError("maximum number of active sessions reached, log out elsewhere first").
		Loc("token", live, "max_live")
}

func lowestFreeSlot(used []int, limit int) (int, bool) {
	taken := make(map[int]struct{}, len(used))
	for _, u := range used {
		taken[u] = struct{}{}
	}
	for s := 0; s < limit; s++ {
		if _, ok := taken[s]; !ok {
			return s, true
		}
	}
	return 0, false
}
