package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// PermissionChecker evaluates platform permissions of a principal
type PermissionChecker interface {
	HasAll(ctx context.Context, p principal.Principal, required ...string) (bool, error)
}

type PermissionMiddleware struct {
	checker PermissionChecker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker PermissionChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// Require admits the request only when the principal's role grants every
// codename. It must run after AuthMiddleware.
func (m *PermissionMiddleware) Require(codenames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			utils.AbortWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
			return
		}

		allowed, err := m.checker.HasAll(c.Request.Context(), p, codenames...)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "principal_id", p.ID(), "required", codenames)
			utils.AbortWithError(c, err)
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "kind", p.Kind(), "principal_id", p.ID(), "required", codenames)
			utils.AbortWithError(c, permissionDenied(codenames))
			return
		}

		c.Next()
	}
}

func permissionDenied(codenames []string) error {
	return errors.NewForbiddenError("you do not have permission to perform this action").
		Loc("permission", codenames, "permission_denied")
}
