package usecase

import (
	"context"

	"travel-agency/pkg/cache"

	"go.uber.org/zap"
)

// cached is a read-through wrapper. Cache errors only cost a database round
// trip, so they are logged and otherwise ignored; failed loads are not stored.
// The version is pinned before the load so a write that invalidates the
// namespace mid-load cannot be shadowed by the stale value.
func cached[T any](ctx context.Context, c cache.Cache, log *zap.Logger, key string, load func() (T, error)) (T, error) {
	version, verr := c.Version(ctx)
	if verr != nil {
		log.Warn("Cache version read failed", zap.Error(verr), zap.String("key", key))
	}

	var hit T
	if verr == nil {
		found, err := c.Get(ctx, key, &hit)
		if err != nil {
			log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		} else if found {
			return hit, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	// tanpa versi, jangan tulis ke cache
	if verr != nil {
		return value, nil
	}
	if err := c.SetAt(ctx, version, key, value); err != nil {
		log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
	return value, nil
}

func invalidate(ctx context.Context, c cache.Cache, log *zap.Logger) {
	if err := c.Invalidate(context.WithoutCancel(ctx)); err != nil {
		log.Warn("Cache invalidation failed", zap.Error(err))
	}
}
