package cache

import (
	"testing"

	"github.com/kerp/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryListCacheFactory_RedisDisabled(t *testing.T) {
	f := NewFactoryListCacheFactory(config.RedisConfig{Enabled: false})

	c, closeFn, err := f.Create()
	require.NoError(t, err)
	assert.IsType(t, &InMemoryFactoryListCache{}, c)
	assert.NoError(t, closeFn())
}

func TestFactoryListCacheFactory_UnreachableRedis(t *testing.T) {
	// Port 1 on loopback refuses connections immediately
	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("falls back to in-memory", func(t *testing.T) {
		c, _, err := NewFactoryListCacheFactory(unreachable).Create()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryFactoryListCache{}, c)
	})

	t.Run("fails without fallback", func(t *testing.T) {
		c, _, err := NewFactoryListCacheFactory(unreachable, WithInMemoryFallback(false)).Create()
		require.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "redis required")
	})
}
