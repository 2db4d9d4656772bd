package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/tests"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "vidyasetu:notices:s1:parent", Key("notices", "s1", "parent"))
}

func TestNewRedisClient_noAddress(t *testing.T) {
	logger := &testutil.Logger{}
	assert.Nil(t, NewRedisClient(context.Background(), core.RedisConfig{}, logger))
	assert.Equal(t, []string{"WARN: redis address not set, caching disabled"}, logger.Messages())
}

func TestFetch_disabled(t *testing.T) {
	c := New(nil, core.RedisConfig{TTL: time.Minute}, &testutil.Logger{})
	assert.False(t, c.Enabled())

	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}
	for i := 0; i < 2; i++ {
		got, err := Fetch(context.Background(), c, Key("x"), load)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	}
	assert.Equal(t, 2, calls)

	var nilCache *Cache
	assert.False(t, nilCache.Enabled())
	assert.False(t, nilCache.Get(context.Background(), "k", &calls))
}

func TestFetch_loadError(t *testing.T) {
	c := New(nil, core.RedisConfig{}, &testutil.Logger{})
	wantErr := errors.New("db down")
	_, err := Fetch(context.Background(), c, Key("x"), func() (int, error) { return 0, wantErr })
	assert.Equal(t, wantErr, err)
}

func TestCache_unreachable(t *testing.T) {
	// nothing listens on port 1: every operation fails and is swallowed
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()
	logger := &testutil.Logger{}
	c := New(rdb, core.RedisConfig{TTL: time.Minute}, logger)

	c.Set(context.Background(), "k", map[string]int{"a": 1})
	var dest map[string]int
	assert.False(t, c.Get(context.Background(), "k", &dest))
	c.Delete(context.Background(), "k")

	got, err := Fetch(context.Background(), c, "k", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.NotEmpty(t, logger.Messages())
}
