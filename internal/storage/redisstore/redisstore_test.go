package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_URL")
	if addr == "" {
		t.Skip("TEST_REDIS_URL environment variable not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err(), "Failed to connect to test Redis at %s", addr)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestStore(t *testing.T) {
	rdb := getTestClient(t)
	store := New(rdb)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Set(ctx, key, "live", time.Minute))
	v, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "live", v)

	ttl, err := rdb.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
