package tokenstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k1 := Key(PrefixRefresh, "token-a")
	k2 := Key(PrefixRefresh, "token-b")

	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, Key(PrefixRefresh, "token-a"))
	assert.NotContains(t, k1, "token-a")
	assert.Contains(t, k1, PrefixRefresh)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	t.Run("expired entry is not found", func(t *testing.T) {
		current = current.Add(2 * time.Minute)
		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "d", "v", time.Hour))
		require.NoError(t, store.Delete(ctx, "d"))
		_, err := store.Get(ctx, "d")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("sweep drops expired entries", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", "1", time.Second))
		require.NoError(t, store.Set(ctx, "b", "2", time.Hour))
		current = current.Add(time.Minute)
		assert.Equal(t, 1, store.Sweep())
		got, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "2", got)
	})
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(ctx).Err())
	defer client.Close()

	store := NewRedisStore(client, "payroll-test")
	key := Key(PrefixReset, time.Now().String())

	require.NoError(t, store.Set(ctx, key, "user-1", time.Minute))
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}
