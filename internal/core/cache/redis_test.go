package cache

import (
	"context"
	"testing"
	"time"

	"recipe-lookup/internal/infrastructure/config"
	"recipe-lookup/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "test:"}, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		_, err := store.Get(ctx, "pasta|pt")
		assert.ErrorIs(t, err, common.ErrCacheMiss)
	})

	t.Run("set then get with prefix and ttl", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "pasta|pt", "value"))

		got, err := store.Get(ctx, "pasta|pt")
		require.NoError(t, err)
		assert.Equal(t, "value", got)

		assert.True(t, mr.Exists("test:pasta|pt"))
		assert.Equal(t, time.Minute, mr.TTL("test:pasta|pt"))
	})

	t.Run("expires", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "soup|pt", "value"))
		mr.FastForward(2 * time.Minute)

		_, err := store.Get(ctx, "soup|pt")
		assert.ErrorIs(t, err, common.ErrCacheMiss)
	})

	stats := store.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(2), stats["misses"])
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	_, err := NewRedisStore(config.RedisConfig{Addr: "127.0.0.1:1"}, time.Minute)
	assert.Error(t, err)
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := New(&config.Config{
		Cache: config.CacheConfig{Enabled: true, Backend: config.CacheBackendRedis, TTL: time.Minute},
		Redis: config.RedisConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &RedisStore{}, store)
}
