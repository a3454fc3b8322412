package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = Rdb.Close()
	})
	return mr
}

func TestHashWithExpireAt(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	v, err := HGetField(ctx, "h", "30")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, HSetWithExpireAt(ctx, "h", "30", "payload", time.Now().Add(time.Hour)))
	v, err = HGetField(ctx, "h", "30")
	require.NoError(t, err)
	assert.Equal(t, "payload", v)
	assert.True(t, mr.TTL("h") > 0)

	require.NoError(t, DeleteKey(ctx, "h"))
	assert.False(t, mr.Exists("h"))
}

func TestIncr(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	n, err := Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	v, err := mr.Get("counter")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestTryLock(t *testing.T) {
	setupMiniRedis(t)
	ctx := context.Background()

	ok, err := TryLock(ctx, "lock", "a", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TryLock(ctx, "lock", "b", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	// 非持有者解锁无效
	UnLock(ctx, "lock", "b")
	ok, err = TryLock(ctx, "lock", "b", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	UnLock(ctx, "lock", "a")
	ok, err = TryLock(ctx, "lock", "b", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
