package middleware

import (
	"github.com/google/wire"

	"github.com/philly/medium-blog/internal/platform/logger"
)

// ProviderSet is the wire provider set for middleware components
var ProviderSet = wire.NewSet(
	ProvideRateLimiter,
)

// RateLimitConfig carries the comment endpoint limits
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// ProvideRateLimiter creates the comment rate limiter from RateLimitConfig
func ProvideRateLimiter(cfg RateLimitConfig, log logger.Logger) *RateLimiter {
	return NewRateLimiter(cfg.RPS, cfg.Burst, log)
}
