// Package cache holds the Redis-backed cache for rendered feed pages.
// Only anonymous pages are cached: viewer-specific interaction flags must
// never be served to another viewer. Counter staleness is bounded by the TTL;
// post writes invalidate eagerly.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const feedKeyPrefix = "feed:"

// FeedCache caches serialized feed pages in Redis. A nil client disables
// caching entirely, so callers never branch on configuration.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a new FeedCache. Pass a nil client to disable caching.
func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

// FeedKey builds the cache key for an anonymous feed page
func FeedKey(page, limit int, tag string) string {
	return fmt.Sprintf("%spage:%d:limit:%d:tag:%s", feedKeyPrefix, page, limit, tag)
}

// Get loads a cached page into dest. The second return is false on a miss.
func (c *FeedCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a page under key with the configured TTL
func (c *FeedCache) Set(ctx context.Context, key string, value interface{}) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate drops every cached feed page. Called after post writes.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, feedKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
