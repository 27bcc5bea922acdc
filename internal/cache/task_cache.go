package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/Manasa-Gp/task-management/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "tasks:list:"

// TaskCache caches task listings in Redis, keyed by a canonical filter string.
// Any write to the tasks table invalidates every listing key.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing for key, or nil on miss.
func (c *TaskCache) GetList(ctx context.Context, key string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, keyListPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the listing under key.
func (c *TaskCache) SetList(ctx context.Context, key string, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyListPrefix+key, b, c.ttl).Err()
}

// Invalidate removes every cached listing (cache invalidation on write).
func (c *TaskCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyListPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
