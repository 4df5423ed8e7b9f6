package cache

import (
	"context"
	"time"

	"github.com/kerp/backend/internal/domain/factory"
	"go.uber.org/zap"
)

// CachingFactoryRepository decorates a factory.Repository with a cached FindActive.
// FindByID and ExistsAndIsActive always read the authoritative store: the active
// check guards writes and must not see a stale list.
type CachingFactoryRepository struct {
	inner  factory.Repository
	cache  FactoryListCache
	ttl    time.Duration
	logger *zap.Logger
}

var _ factory.Repository = (*CachingFactoryRepository)(nil)

// NewCachingFactoryRepository wraps inner. A nil logger disables logging.
func NewCachingFactoryRepository(inner factory.Repository, cache FactoryListCache, ttl time.Duration, logger *zap.Logger) *CachingFactoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingFactoryRepository{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// FindByID reads through to the store
func (r *CachingFactoryRepository) FindByID(ctx context.Context, id int) (*factory.Factory, error) {
	return r.inner.FindByID(ctx, id)
}

// ExistsAndIsActive reads through to the store
func (r *CachingFactoryRepository) ExistsAndIsActive(ctx context.Context, id int) (bool, error) {
	return r.inner.ExistsAndIsActive(ctx, id)
}

// FindActive serves the list from the cache, loading and storing it on a miss.
// Cache failures are logged and the store is used instead.
func (r *CachingFactoryRepository) FindActive(ctx context.Context) ([]factory.Factory, error) {
	cached, found, err := r.cache.Get(ctx)
	if err != nil {
		r.logger.Warn("Factory list cache read failed", zap.Error(err))
	} else if found {
		return cached, nil
	}

	factories, err := r.inner.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, factories, r.ttl); err != nil {
		r.logger.Warn("Factory list cache write failed", zap.Error(err))
	}
	return factories, nil
}

// Invalidate drops the cached list, e.g. after a factory is activated or deactivated
func (r *CachingFactoryRepository) Invalidate(ctx context.Context) error {
	return r.cache.Invalidate(ctx)
}
