package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/billbook-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, &config.RedisConfig{CacheTTL: time.Minute})
	assert.False(t, c.Enabled())

	var dest []string
	hit, err := c.GetObject(ctx, "products:all", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetObject(ctx, "products:all", []string{"a"}))
	require.NoError(t, c.Delete(ctx, "products:all"))

	release, err := c.Obtain(ctx, "promote:1", time.Second)
	require.NoError(t, err)
	release()
	require.NoError(t, c.Close())
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	assert.False(t, c.Enabled())
	require.NoError(t, c.Delete(context.Background(), "k"))
}
