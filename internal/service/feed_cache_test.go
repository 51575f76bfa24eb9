package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeblog/plume/internal/cache"
)

// wires a real cache in front of the feed and publish services.
func newCachedEnv(t *testing.T) (*env, *miniredis.Miniredis) {
	t.Helper()
	e := newEnv(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	fc := cache.NewFeedCache(rdb, 20*time.Second)
	e.feeds = NewFeedService(e.posts, e.users, e.groups, e.comments, e.follows, fc, 10)
	e.publish = NewPublishService(e.posts, e.comments, e.groups, fc)
	return e, mr
}

func TestHomeFeedReadThrough(t *testing.T) {
	e, _ := newCachedEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	e.post(t, a, "first", nil)

	fp, err := e.feeds.Home(ctx, 1)
	require.NoError(t, err)
	require.Len(t, fp.Posts, 1)

	// a direct DB write is invisible until the cache turns over
	e.post(t, a, "sneaky", nil)
	cached, err := e.feeds.Home(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cached.Posts, 1, "cached window still served")
}

func TestHomeFeedInvalidatedOnPublish(t *testing.T) {
	e, _ := newCachedEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	e.post(t, a, "first", nil)

	_, err := e.feeds.Home(ctx, 1)
	require.NoError(t, err)

	// writes through the mutation service drop the cached pages
	_, err = e.publish.CreatePost(ctx, a, PostInput{Text: "second"})
	require.NoError(t, err)

	fp, err := e.feeds.Home(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, fp.Posts, 2)
	assert.Equal(t, "second", fp.Posts[0].Text)
}

func TestHomeFeedCacheExpiry(t *testing.T) {
	e, mr := newCachedEnv(t)
	ctx := context.Background()
	a := e.user(t, "alice")
	e.post(t, a, "first", nil)

	_, err := e.feeds.Home(ctx, 1)
	require.NoError(t, err)

	e.post(t, a, "later", nil)
	mr.FastForward(21 * time.Second)

	fp, err := e.feeds.Home(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, fp.Posts, 2, "stale window expires with the TTL")
}
