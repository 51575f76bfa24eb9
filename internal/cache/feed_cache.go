// Package cache provides the read-through page cache that fronts the
// home feed. It is a bounded-staleness optimization only: every miss or
// redis failure falls through to the database path.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/plumeblog/plume/pkg/logger"
)

const homeKeyPrefix = "feed:home:"

// FeedCache caches serialized home-feed pages keyed by page number.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = 20 * time.Second
	}
	return &FeedCache{rdb: rdb, ttl: ttl}
}

// GetHome returns the cached payload for a page, if present.
func (c *FeedCache) GetHome(ctx context.Context, page int) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, homeKey(page)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("feed cache get failed", zap.Int("page", page), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// SetHome stores a page payload with the configured TTL.
func (c *FeedCache) SetHome(ctx context.Context, page int, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, homeKey(page), payload, c.ttl).Err(); err != nil {
		logger.Warn("feed cache set failed", zap.Int("page", page), zap.Error(err))
	}
}

// InvalidateHome drops every cached home page. Called after post writes;
// the TTL bounds staleness even when this is missed.
func (c *FeedCache) InvalidateHome(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	keys, err := c.rdb.Keys(ctx, homeKeyPrefix+"*").Result()
	if err != nil {
		logger.Warn("feed cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("feed cache invalidate failed", zap.Error(err))
	}
}

func homeKey(page int) string { return fmt.Sprintf("%s%d", homeKeyPrefix, page) }
