package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverLimiter prefers the shared Redis counter and falls back to the
// in-memory limiter while Redis is down, probing the primary again after a
// minute.
type FailoverLimiter struct {
	primary  domain.RateLimiter
	fallback domain.RateLimiter
	logger   *zerolog.Logger

	isDown    atomic.Bool
	mu        sync.Mutex
	lastCheck time.Time
}

func NewFailoverLimiter(primary, fallback domain.RateLimiter, logger *zerolog.Logger) *FailoverLimiter {
	return &FailoverLimiter{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *FailoverLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if !f.isDown.Load() {
		allowed, err := f.primary.Allow(ctx, key)
		if err == nil {
			return allowed, nil
		}
		f.logger.Error().Err(err).Msg("primary rate limiter failed, falling back to memory")
		f.isDown.Store(true)
		f.setLastCheck(time.Now())
	}

	if f.isDown.Load() && time.Since(f.getLastCheck()) > time.Minute {
		allowed, err := f.primary.Allow(ctx, key)
		if err == nil {
			f.isDown.Store(false)
			return allowed, nil
		}
		f.setLastCheck(time.Now())
	}

	return f.fallback.Allow(ctx, key)
}

func (f *FailoverLimiter) setLastCheck(t time.Time) {
	f.mu.Lock()
	f.lastCheck = t
	f.mu.Unlock()
}

func (f *FailoverLimiter) getLastCheck() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCheck
}
