package cache

import (
	"context"
	"sync"
	"time"

	"github.com/kerp/backend/internal/domain/factory"
)

// InMemoryFactoryListCache implements FactoryListCache in process memory.
// It is used when Redis is disabled and in tests.
type InMemoryFactoryListCache struct {
	mu        sync.RWMutex
	factories []factory.Factory
	expiresAt time.Time // zero means no expiry
	present   bool
	now       func() time.Time
}

// InMemoryFactoryListCacheOption is a functional option for configuring the cache
type InMemoryFactoryListCacheOption func(*InMemoryFactoryListCache)

// WithClock sets the time source used for expiry
func WithClock(now func() time.Time) InMemoryFactoryListCacheOption {
	return func(c *InMemoryFactoryListCache) {
		c.now = now
	}
}

// NewInMemoryFactoryListCache creates an empty cache
func NewInMemoryFactoryListCache(opts ...InMemoryFactoryListCacheOption) *InMemoryFactoryListCache {
	c := &InMemoryFactoryListCache{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the cached list
func (c *InMemoryFactoryListCache) Get(_ context.Context) ([]factory.Factory, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.present || c.expired() {
		return nil, false, nil
	}

	out := make([]factory.Factory, len(c.factories))
	copy(out, c.factories)
	return out, true, nil
}

// Set stores a copy of the list for ttl. A non-positive ttl stores without expiry.
func (c *InMemoryFactoryListCache) Set(_ context.Context, factories []factory.Factory, ttl time.Duration) error {
	stored := make([]factory.Factory, len(factories))
	copy(stored, factories)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.factories = stored
	c.present = true
	c.expiresAt = time.Time{}
	if ttl > 0 {
		c.expiresAt = c.now().Add(ttl)
	}
	return nil
}

// Invalidate drops the cached list
func (c *InMemoryFactoryListCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.factories = nil
	c.present = false
	c.expiresAt = time.Time{}
	return nil
}

func (c *InMemoryFactoryListCache) expired() bool {
	return !c.expiresAt.IsZero() && !c.now().Before(c.expiresAt)
}
