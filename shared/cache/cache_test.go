package cache_test

import (
	"context"
	"errors"
	"fmt"
	"rkhub/infras/otel/mocks"
	"rkhub/shared/cache"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), srv
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	err := c.Save(ctx, "updates:get_all", entry{Title: "Exam schedule", Count: 2}, 60)
	require.NoError(t, err)

	var got entry
	err = c.Get(ctx, "updates:get_all", &got)

	assert.NoError(t, err)
	assert.Equal(t, entry{Title: "Exam schedule", Count: 2}, got)
}

func TestRedisCache_GetString(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "plain", "value", 60))

	var got string
	err := c.Get(ctx, "plain", &got)

	assert.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestRedisCache_GetMissing(t *testing.T) {
	c, _ := newCache(t)

	var got entry
	err := c.Get(context.Background(), "missing", &got)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_SaveExpires(t *testing.T) {
	c, srv := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "short", "value", 5))

	srv.FastForward(6 * time.Second)

	var got string
	assert.Error(t, c.Get(ctx, "short", &got))
}

func TestRedisCache_Delete(t *testing.T) {
	c, srv := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "gallery:get_all", "value", 60))
	require.NoError(t, c.Delete(ctx, "gallery:get_all"))

	assert.False(t, srv.Exists("gallery:get_all"))
}

func TestRedisCache_Clear(t *testing.T) {
	c, srv := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "gallery:get_all:limit=6", "a", 60))
	require.NoError(t, c.Save(ctx, "gallery:get_all:limit=0", "b", 60))
	require.NoError(t, c.Save(ctx, "updates:get_all:limit=3", "c", 60))

	require.NoError(t, c.Clear(ctx, "gallery:get_all:*"))

	assert.False(t, srv.Exists("gallery:get_all:limit=6"))
	assert.False(t, srv.Exists("gallery:get_all:limit=0"))
	assert.True(t, srv.Exists("updates:get_all:limit=3"))
}

func TestRedisCache_ClearManyKeys(t *testing.T) {
	c, srv := newCache(t)

	for i := range 250 {
		require.NoError(t, srv.Set(fmt.Sprintf("admissions:get_all:page=%d", i), "[]"))
	}

	require.NoError(t, c.Clear(context.Background(), "admissions:get_all:*"))

	assert.Empty(t, srv.Keys())
}

func TestRedisCache_Increment(t *testing.T) {
	c, srv := newCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := c.Increment(ctx, "limiter:203.0.113.7", 60)

		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	assert.Equal(t, 60*time.Second, srv.TTL("limiter:203.0.113.7"))

	srv.FastForward(61 * time.Second)

	count, err := c.Increment(ctx, "limiter:203.0.113.7", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisCache_VersionAndBump(t *testing.T) {
	c, srv := newCache(t)
	ctx := context.Background()

	version, err := c.Version(ctx, "version:updates:get_all")
	require.NoError(t, err)
	assert.Zero(t, version)

	for want := int64(1); want <= 2; want++ {
		bumped, err := c.Bump(ctx, "version:updates:get_all")

		require.NoError(t, err)
		assert.Equal(t, want, bumped)
	}

	version, err = c.Version(ctx, "version:updates:get_all")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	assert.Zero(t, srv.TTL("version:updates:get_all"))
}

func TestRedisCache_VersionNotANumber(t *testing.T) {
	c, srv := newCache(t)

	require.NoError(t, srv.Set("version:gallery:get_all", "abc"))

	_, err := c.Version(context.Background(), "version:gallery:get_all")

	assert.Error(t, err)
}
