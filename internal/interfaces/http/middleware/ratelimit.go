package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/infrastructure/ratelimit"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// RateLimiter throttles attempts per client IP over the configured sliding
// windows. A nil limiter lets every request through.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
	scope   string
	logger  logger.Interface
}

// NewRateLimiter creates a throttle. scope separates the counters of
// different endpoints sharing one Redis.
func NewRateLimiter(limiter ratelimit.RateLimiter, config ratelimit.RateLimitConfig, scope string, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		config:  config,
		scope:   scope,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the limit per client IP
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter == nil {
			c.Next()
			return
		}

		key := rl.scope + ":" + c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.config)
		if err != nil {
			// fail open when Redis is unavailable
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Warnw("rate limit exceeded", "scope", rl.scope, "client_ip", c.ClientIP())
			utils.AbortWithError(c, errors.NewRateLimitedError("too many attempts, please try again later").
				Loc("client_ip", c.ClientIP(), "throttled"))
			return
		}

		c.Next()
	}
}
