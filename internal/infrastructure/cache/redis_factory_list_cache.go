package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kerp/backend/internal/domain/factory"
	"github.com/kerp/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisPingTimeout = 5 * time.Second

// RedisFactoryListCache implements FactoryListCache using Redis
type RedisFactoryListCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	key        string
	logger     *zap.Logger
}

// RedisFactoryListCacheOption is a functional option for configuring the cache
type RedisFactoryListCacheOption func(*RedisFactoryListCache)

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisFactoryListCacheOption {
	return func(c *RedisFactoryListCache) {
		c.logger = logger
	}
}

// WithRedisKey overrides the key the list is stored under
func WithRedisKey(key string) RedisFactoryListCacheOption {
	return func(c *RedisFactoryListCache) {
		c.key = key
	}
}

// NewRedisFactoryListCache connects to Redis and returns a cache that owns the client
func NewRedisFactoryListCache(cfg config.RedisConfig, opts ...RedisFactoryListCacheOption) (*RedisFactoryListCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisFactoryListCacheWithClient(client, opts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisFactoryListCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client.
func NewRedisFactoryListCacheWithClient(client *redis.Client, opts ...RedisFactoryListCacheOption) *RedisFactoryListCache {
	c := &RedisFactoryListCache{
		client: client,
		key:    ActiveFactoriesKey,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached list
func (c *RedisFactoryListCache) Get(ctx context.Context) ([]factory.Factory, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss for active factories", zap.String("key", c.key))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get active factories from cache: %w", err)
	}

	var factories []factory.Factory
	if err := json.Unmarshal(data, &factories); err != nil {
		// A corrupt entry is treated as a miss and removed
		c.logger.Warn("Discarding undecodable factory list entry",
			zap.String("key", c.key),
			zap.Error(err))
		_ = c.client.Del(ctx, c.key).Err()
		return nil, false, nil
	}

	return factories, true, nil
}

// Set stores the list for ttl. A non-positive ttl stores without expiry.
func (c *RedisFactoryListCache) Set(ctx context.Context, factories []factory.Factory, ttl time.Duration) error {
	if factories == nil {
		factories = []factory.Factory{}
	}

	data, err := json.Marshal(factories)
	if err != nil {
		return fmt.Errorf("failed to marshal active factories: %w", err)
	}

	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set active factories in cache: %w", err)
	}

	c.logger.Debug("Cached active factories",
		zap.String("key", c.key),
		zap.Int("count", len(factories)),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes the cached list
func (c *RedisFactoryListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate active factories: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache created it
func (c *RedisFactoryListCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
