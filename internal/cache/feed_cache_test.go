package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*FeedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFeedCache(rdb, 20*time.Second), mr
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)
	_, ok := c.GetHome(context.Background(), 1)
	assert.False(t, ok)
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetHome(ctx, 1, []byte(`{"posts":[]}`))
	data, ok := c.GetHome(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, `{"posts":[]}`, string(data))

	// page keys are independent
	_, ok = c.GetHome(ctx, 2)
	assert.False(t, ok)
}

func TestInvalidateDropsAllPages(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetHome(ctx, 1, []byte("a"))
	c.SetHome(ctx, 2, []byte("b"))
	c.InvalidateHome(ctx)

	_, ok := c.GetHome(ctx, 1)
	assert.False(t, ok)
	_, ok = c.GetHome(ctx, 2)
	assert.False(t, ok)
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetHome(ctx, 1, []byte("a"))
	mr.FastForward(21 * time.Second)

	_, ok := c.GetHome(ctx, 1)
	assert.False(t, ok, "TTL bounds staleness")
}

func TestNilCacheIsInert(t *testing.T) {
	var c *FeedCache
	ctx := context.Background()
	_, ok := c.GetHome(ctx, 1)
	assert.False(t, ok)
	c.SetHome(ctx, 1, []byte("a"))
	c.InvalidateHome(ctx)
}
