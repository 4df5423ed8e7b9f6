package cache

import (
	"fmt"

	"github.com/kerp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// FactoryListCacheFactory creates the factory list cache based on configuration
type FactoryListCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryListCacheFactoryOption is a functional option for configuring the factory
type FactoryListCacheFactoryOption func(*FactoryListCacheFactory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) FactoryListCacheFactoryOption {
	return func(f *FactoryListCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryListCacheFactoryOption {
	return func(f *FactoryListCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactoryListCacheFactory creates a new factory
func NewFactoryListCacheFactory(cfg config.RedisConfig, opts ...FactoryListCacheFactoryOption) *FactoryListCacheFactory {
	f := &FactoryListCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create returns a Redis cache when Redis is enabled and reachable, otherwise an in-memory cache.
// When Redis is enabled but unreachable and fallback is disabled, an error is returned.
// The returned close function releases the Redis client, if any.
func (f *FactoryListCacheFactory) Create() (FactoryListCache, func() error, error) {
	noop := func() error { return nil }

	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory factory list cache")
		return NewInMemoryFactoryListCache(), noop, nil
	}

	redisCache, err := NewRedisFactoryListCache(f.redisConfig, WithRedisLogger(f.logger))
	if err == nil {
		f.logger.Info("Using Redis factory list cache", zap.String("addr", f.redisConfig.Addr()))
		return redisCache, redisCache.Close, nil
	}

	if !f.allowInMemoryFallback {
		return nil, noop, fmt.Errorf("redis required for factory list cache but unavailable: %w", err)
	}

	// Each instance then keeps its own copy; entries only age out through the TTL
	f.logger.Warn("Redis unavailable, falling back to in-memory factory list cache",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err))
	return NewInMemoryFactoryListCache(), noop, nil
}
