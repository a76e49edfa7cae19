package pagecache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/medium-blog/internal/platform/pagecache"
)

func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache(t *testing.T) {
	url := skipIfNoRedis(t)

	opts := pagecache.DefaultRedisOptions()
	opts.URL = url
	opts.Prefix = "test:" + t.Name() + ":"
	c, err := pagecache.NewRedisCache(opts)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, pagecache.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "page", []byte("<html>"), time.Minute))
	got, err := c.Get(ctx, "page")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html>"), got)

	require.NoError(t, c.Delete(ctx, "page"))
	_, err = c.Get(ctx, "page")
	assert.ErrorIs(t, err, pagecache.ErrCacheMiss)
}

func TestRedisCacheRequiresURL(t *testing.T) {
	_, err := pagecache.NewRedisCache(pagecache.RedisOptions{})
	assert.Error(t, err)
}
