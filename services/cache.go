package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// jsonCache is a best-effort read cache. A nil client turns every call into a
// miss, and Redis errors are logged and treated as misses.
type jsonCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newJSONCache(client *redis.Client, ttl time.Duration) *jsonCache {
	return &jsonCache{client: client, ttl: ttl}
}

func (c *jsonCache) get(ctx context.Context, key string, dst interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).WithField("key", key).Warn("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache entry unreadable")
		return false
	}
	return true
}

func (c *jsonCache) set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

func (c *jsonCache) invalidate(ctx context.Context, pattern string) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.WithError(err).WithField("pattern", pattern).Warn("cache invalidate failed")
	}
}
