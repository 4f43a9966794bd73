// Package pagecache stores rendered page snapshots with a per-entry TTL.
// Staleness inside the TTL window is accepted; a miss (or any cache error)
// simply means the page gets rendered again.
package pagecache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Snapshot is one cached rendering of a page.
type Snapshot struct {
	ContentType string
	Body        []byte
}

// Cache is the page snapshot store handed to the HTTP layer. Implementations
// must tolerate concurrent use; stale reads are fine, errors are swallowed by
// callers.
type Cache interface {
	Get(ctx context.Context, key string) (*Snapshot, bool)
	Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration)
}

type redisCache struct {
	client *redis.Client
	prefix string
}

// New builds a redis-backed page cache. Keys are namespaced under "page:".
func New(client *redis.Client) Cache {
	return &redisCache{client: client, prefix: "page:"}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Snapshot, bool) {
	vals, err := c.client.HGetAll(ctx, c.prefix+key).Result()
	if err != nil || len(vals) == 0 {
		return nil, false
	}
	return &Snapshot{ContentType: vals["ct"], Body: []byte(vals["body"])}, true
}

func (c *redisCache) Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	k := c.prefix + key
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, k, "ct", snap.ContentType, "body", snap.Body)
	pipe.Expire(ctx, k, ttl)
	_, _ = pipe.Exec(ctx)
}

type disabled struct{}

// Disabled returns a no-op cache for tests and deployments without redis.
func Disabled() Cache { return disabled{} }

func (disabled) Get(context.Context, string) (*Snapshot, bool)             { return nil, false }
func (disabled) Set(context.Context, string, *Snapshot, time.Duration) {}
