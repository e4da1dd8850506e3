package cache

import (
	"context"
	"errors"
	"hotel/infras/otel/mocks"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, RedisCache) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return s, NewRedisCache(client, mocks.NewOtel())
}

type payload struct {
	StaffID int64  `json:"staff_id"`
	Name    string `json:"name"`
}

func TestRedisCache_SaveGetDelete(t *testing.T) {
	s, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "k:json", payload{StaffID: 3, Name: "Ann"}, time.Minute))
	require.NoError(t, c.Save(ctx, "k:str", "plain", time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "k:json", &got))
	assert.Equal(t, payload{StaffID: 3, Name: "Ann"}, got)

	var str string
	require.NoError(t, c.Get(ctx, "k:str", &str))
	assert.Equal(t, "plain", str)

	assert.Equal(t, time.Minute, s.TTL("k:json"))

	require.NoError(t, c.Delete(ctx, "k:json"))

	err := c.Get(ctx, "k:json", &got)
	assert.True(t, errors.Is(err, Nil))
}

func TestRedisCache_GetExpired(t *testing.T) {
	s, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "k", "v", time.Second))
	s.FastForward(2 * time.Second)

	var v string
	assert.ErrorIs(t, c.Get(ctx, "k", &v), Nil)
}

func TestRedisCache_GetCorrupt(t *testing.T) {
	s, c := setupCache(t)
	require.NoError(t, s.Set("k", "{not json"))

	var got payload
	err := c.Get(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, Nil))
}

func TestRedisCache_Increment(t *testing.T) {
	s, c := setupCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := c.Increment(ctx, "counter", 10*time.Second)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, 10*time.Second, s.TTL("counter"))

	s.FastForward(11 * time.Second)

	got, err := c.Increment(ctx, "counter", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestRedisCache_Unavailable(t *testing.T) {
	s, c := setupCache(t)
	s.Close()

	_, err := c.Increment(context.Background(), "counter", time.Second)
	assert.Error(t, err)
}
