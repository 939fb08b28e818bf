package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/token"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// TokenResolver maps a presented bearer token to its principal
type TokenResolver interface {
	Resolve(ctx context.Context, plain string) (principal.Principal, *token.AuthToken, error)
}

type AuthMiddleware struct {
	tokens TokenResolver
	header string
	logger logger.Interface
}

func NewAuthMiddleware(tokens TokenResolver, header string, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		header: header,
		logger: logger,
	}
}

// RequireOperator only admits tokens issued to operators
func (m *AuthMiddleware) RequireOperator() gin.HandlerFunc {
	return m.require(principal.KindOperator)
}

// RequireCustomer only admits tokens issued to customers
func (m *AuthMiddleware) RequireCustomer() gin.HandlerFunc {
	return m.require(principal.KindCustomer)
}

func (m *AuthMiddleware) require(kind principal.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		plain := strings.TrimSpace(c.GetHeader(m.header))
		if plain == "" {
			utils.AbortWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided").
				Loc(m.header, nil, "missing"))
			return
		}

		p, tok, err := m.tokens.Resolve(c.Request.Context(), plain)
		if err != nil {
			if !errors.IsAppError(err) {
				m.logger.Errorw("failed to resolve token", "error", err)
			} else {
				m.logger.Debugw("token rejected", "token", utils.MaskToken(plain), "error", err)
			}
			utils.AbortWithError(c, err)
			return
		}

		if p.Kind() != kind {
			m.logger.Warnw("token used on the wrong surface",
				"kind", p.Kind(),
				"required_kind", kind,
				"principal_id", p.ID(),
			)
			utils.AbortWithError(c, errors.NewUnauthorizedError("invalid token").
				Loc(m.header, nil, "invalid"))
			return
		}

		c.Set(constants.ContextKeyPrincipal, p)
		c.Set(constants.ContextKeyAuthToken, tok)

		c.Next()
	}
}
