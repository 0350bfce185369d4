package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	memCache := NewMemoryCache()
	defer memCache.Stop()

	ctx := context.Background()
	payload := []byte(`[{"formatted_address":"Seattle, WA, USA"}]`)

	t.Run("Set and Get", func(t *testing.T) {
		memCache.Set(ctx, "geocode:seattle", payload, time.Minute)

		result, found := memCache.Get(ctx, "geocode:seattle")
		assert.True(t, found)
		assert.Equal(t, payload, result)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		result, found := memCache.Get(ctx, "geocode:nonexistent")
		assert.False(t, found)
		assert.Nil(t, result)
	})

	t.Run("Nil value ignored", func(t *testing.T) {
		memCache.Set(ctx, "geocode:nil", nil, time.Minute)

		_, found := memCache.Get(ctx, "geocode:nil")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		memCache.Set(ctx, "geocode:delete", payload, time.Minute)

		_, found := memCache.Get(ctx, "geocode:delete")
		assert.True(t, found)

		memCache.Delete(ctx, "geocode:delete")

		_, found = memCache.Get(ctx, "geocode:delete")
		assert.False(t, found)
	})

	t.Run("TTL expiration", func(t *testing.T) {
		memCache.Set(ctx, "geocode:ttl", payload, 10*time.Millisecond)

		_, found := memCache.Get(ctx, "geocode:ttl")
		assert.True(t, found)

		time.Sleep(20 * time.Millisecond)

		_, found = memCache.Get(ctx, "geocode:ttl")
		assert.False(t, found)
	})

	t.Run("Clear", func(t *testing.T) {
		memCache.Set(ctx, "geocode:a", payload, time.Minute)
		memCache.Set(ctx, "geocode:b", payload, time.Minute)

		memCache.Clear(ctx)

		_, found := memCache.Get(ctx, "geocode:a")
		assert.False(t, found)
		_, found = memCache.Get(ctx, "geocode:b")
		assert.False(t, found)
	})
}

func TestRedisCache(t *testing.T) {
	mockRedis := miniredis.RunT(t)

	redisCache, err := NewRedisCache(&RedisCacheConfig{
		Addr:         mockRedis.Addr(),
		Password:     "",
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	assert.NoError(t, err)

	ctx := context.Background()
	payload := []byte(`[{"formatted_address":"Seattle, WA, USA"}]`)

	t.Run("Set and Get", func(t *testing.T) {
		redisCache.Set(ctx, "geocode:seattle", payload, time.Minute)

		result, found := redisCache.Get(ctx, "geocode:seattle")
		assert.True(t, found)
		assert.Equal(t, payload, result)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		result, found := redisCache.Get(ctx, "geocode:nonexistent")
		assert.False(t, found)
		assert.Nil(t, result)
	})

	t.Run("Delete", func(t *testing.T) {
		redisCache.Set(ctx, "geocode:delete", payload, time.Minute)

		_, found := redisCache.Get(ctx, "geocode:delete")
		assert.True(t, found)

		redisCache.Delete(ctx, "geocode:delete")

		_, found = redisCache.Get(ctx, "geocode:delete")
		assert.False(t, found)
	})

	t.Run("TTL expiration", func(t *testing.T) {
		redisCache.Set(ctx, "geocode:ttl", payload, 50*time.Millisecond)

		_, found := redisCache.Get(ctx, "geocode:ttl")
		assert.True(t, found)

		mockRedis.FastForward(time.Second)

		_, found = redisCache.Get(ctx, "geocode:ttl")
		assert.False(t, found)
	})

	t.Run("Clear", func(t *testing.T) {
		redisCache.Set(ctx, "geocode:a", payload, time.Minute)

		redisCache.Clear(ctx)

		_, found := redisCache.Get(ctx, "geocode:a")
		assert.False(t, found)
	})
}
