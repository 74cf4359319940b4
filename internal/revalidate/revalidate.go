// Package revalidate is the narrow contract between the core and the
// external cache-invalidation collaborator. After a successful mutation the
// core signals that a logical path's cached view is stale; how that view is
// rebuilt is not the core's concern.
package revalidate

import (
	"context"
	"fmt"

	"github.com/jeroginaca/threads/internal/cache"
	"github.com/jeroginaca/threads/internal/logger"
	"go.uber.org/zap"
)

// Channel carries stale-path announcements for external subscribers
const Channel = "revalidate"

// Invalidator marks a logical path's cached view stale. The path is an
// opaque token supplied by the caller and forwarded unchanged.
type Invalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// RedisInvalidator drops the cached responses for a path and announces the
// path on the revalidate channel.
type RedisInvalidator struct {
	cache *cache.Client
}

// NewRedisInvalidator creates an invalidator over the shared redis client
func NewRedisInvalidator(c *cache.Client) *RedisInvalidator {
	return &RedisInvalidator{cache: c}
}

// Invalidate removes every cached response variant for path (query and
// per-user variants included) and publishes the path for subscribers.
func (r *RedisInvalidator) Invalidate(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	pattern := fmt.Sprintf("response:%s*", path)
	keys, err := r.cache.Keys(ctx, pattern)
	if err != nil {
		return fmt.Errorf("list cached views for %s: %w", path, err)
	}
	if len(keys) > 0 {
		if err := r.cache.Del(ctx, keys...); err != nil {
			return fmt.Errorf("drop cached views for %s: %w", path, err)
		}
	}

	if err := r.cache.Publish(ctx, Channel, path); err != nil {
		return fmt.Errorf("announce stale path %s: %w", path, err)
	}

	logger.Log.Debug("path invalidated",
		zap.String("path", path),
		zap.Int("dropped_keys", len(keys)),
	)
	return nil
}

// Noop is used when redis is unavailable and in tests
type Noop struct{}

// Invalidate does nothing
func (Noop) Invalidate(ctx context.Context, path string) error {
	return nil
}
