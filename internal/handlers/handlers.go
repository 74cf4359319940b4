package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/jeroginaca/threads/internal/logger"
	"github.com/jeroginaca/threads/internal/revalidate"
	"github.com/jeroginaca/threads/internal/service"
	"github.com/jeroginaca/threads/internal/store"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	users       *store.UserDirectory
	threads     *store.ThreadStore
	feed        *service.FeedService
	activity    *service.ActivityService
	invalidator revalidate.Invalidator
}

// New creates a handlers instance over the stores and services
func New(
	users *store.UserDirectory,
	threads *store.ThreadStore,
	feed *service.FeedService,
	activity *service.ActivityService,
	invalidator revalidate.Invalidator,
) *Handlers {
	if invalidator == nil {
		invalidator = revalidate.Noop{}
	}
	return &Handlers{
		users:       users,
		threads:     threads,
		feed:        feed,
		activity:    activity,
		invalidator: invalidator,
	}
}

// invalidatePath signals that a logical path's cached view is stale after a
// successful mutation. Failures are logged, never surfaced; the write already
// happened.
func (h *Handlers) invalidatePath(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := h.invalidator.Invalidate(ctx, path); err != nil {
		logger.Log.Warn("cache invalidation failed",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
