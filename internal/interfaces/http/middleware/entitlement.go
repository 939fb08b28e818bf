package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// FeatureGate checks that a customer's active plan carries a feature
type FeatureGate interface {
	RequireFeature(ctx context.Context, c *principal.Customer, featureCode string) (*subscription.PlanFeature, error)
}

type EntitlementMiddleware struct {
	gate   FeatureGate
	logger logger.Interface
}

func NewEntitlementMiddleware(gate FeatureGate, logger logger.Interface) *EntitlementMiddleware {
	return &EntitlementMiddleware{
		gate:   gate,
		logger: logger,
	}
}

// RequireFeature rejects customers whose plan lacks feature. The plan
// feature row is stored on the context so the handler can read its quantity.
func (m *EntitlementMiddleware) RequireFeature(feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := CurrentCustomer(c)
		if !ok {
			utils.AbortWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
			return
		}

		row, err := m.gate.RequireFeature(c.Request.Context(), customer, feature)
		if err != nil {
			if errors.IsAppError(err) {
				m.logger.Warnw("subscription lacks required feature",
					"customer_id", customer.ID(),
					"required_feature", feature,
					"error", err,
				)
			} else {
				m.logger.Errorw("feature check failed", "customer_id", customer.ID(), "feature", feature, "error", err)
			}
			utils.AbortWithError(c, err)
			return
		}

		c.Set(constants.ContextKeyRequiredFeature, row)
		c.Next()
	}
}
