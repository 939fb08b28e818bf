package ratelimit

import (
	"context"
	"time"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// RateLimiter counts attempts per key over sliding windows
type RateLimiter interface {
	// Allow records an attempt and reports whether it fits every window
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	// Count returns the attempts recorded within window
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
