package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/adapters/redis"
)

func newThrottle(t *testing.T, maxAttempts int, window time.Duration) (*miniredis.Miniredis, *goredis.Client, func() bool) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	throttle := redis.NewLoginThrottle(client, maxAttempts, window)
	ctx := context.Background()

	fail := func() bool {
		require.NoError(t, throttle.Failed(ctx, "ivan"))
		ok, err := throttle.Allowed(ctx, "ivan")
		require.NoError(t, err)
		return ok
	}
	return mr, client, fail
}

func TestLoginThrottle_BlocksAfterMaxAttempts(t *testing.T) {
	_, _, fail := newThrottle(t, 3, time.Minute)

	assert.True(t, fail())
	assert.True(t, fail())
	assert.False(t, fail())
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	mr, _, fail := newThrottle(t, 1, time.Minute)

	assert.False(t, fail())
	assert.Equal(t, time.Minute, mr.TTL("notes:login_failures:ivan"))

	mr.FastForward(time.Minute + time.Second)

	assert.False(t, mr.Exists("notes:login_failures:ivan"))
}

func TestLoginThrottle_Reset(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	throttle := redis.NewLoginThrottle(client, 1, time.Minute)
	require.NoError(t, throttle.Failed(ctx, "ivan"))

	ok, err := throttle.Allowed(ctx, "ivan")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, throttle.Reset(ctx, "ivan"))

	ok, err = throttle.Allowed(ctx, "ivan")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = throttle.Allowed(ctx, "anna")
	require.NoError(t, err)
	assert.True(t, ok, "other logins are not affected")
}

func TestLoginThrottle_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	throttle := redis.NewLoginThrottle(client, 1, time.Minute)

	_, err := throttle.Allowed(context.Background(), "ivan")
	require.Error(t, err)
	require.Error(t, throttle.Failed(context.Background(), "ivan"))
}
