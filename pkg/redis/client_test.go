package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))
	return mr
}

func TestInit_BadURL(t *testing.T) {
	assert.Error(t, Init("not-a-url", ""))
}

func TestInit_UnreachableServer(t *testing.T) {
	assert.Error(t, Init("redis://127.0.0.1:1", ""))
}

func TestSetGetDel(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, "k", "v", time.Minute))

	val, err := Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.Error(t, err)
}

func TestSetNX(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	ok, err := SetNX(ctx, "lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = SetNX(ctx, "lock", "2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncrExpire(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	n, err := Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, Expire(ctx, "counter", time.Second))
	mr.FastForward(2 * time.Second)

	_, err = Get(ctx, "counter")
	assert.Error(t, err)
}
