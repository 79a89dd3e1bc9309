package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	cacheVersionKey = "tasks:list:ver"
	cacheTTL        = 60 * time.Second
)

// listCache memoizes task list responses in Redis. Instead of scanning for
// stale keys on writes, every mutation bumps a version counter that is part
// of each cache key, so old entries just expire.
type listCache struct {
	rdb *redis.Client
}

func newListCache(rdb *redis.Client) *listCache {
	if rdb == nil {
		return nil
	}
	return &listCache{rdb: rdb}
}

func (c *listCache) key(ctx context.Context, projectID *uuid.UUID, skip, limit int) string {
	ver, err := c.rdb.Get(ctx, cacheVersionKey).Result()
	if err != nil {
		ver = "0"
	}
	scope := "all"
	if projectID != nil {
		scope = projectID.String()
	}
	return fmt.Sprintf("tasks:list:%s:%s:%d:%d", ver, scope, skip, limit)
}

func (c *listCache) get(ctx context.Context, key string) ([]TaskResponse, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var rows []TaskResponse
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *listCache) set(ctx context.Context, key string, rows []TaskResponse) {
	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, cacheTTL)
}

func (c *listCache) bump(ctx context.Context) {
	if err := c.rdb.Incr(ctx, cacheVersionKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
		// Cache is advisory; a failed bump only means a short staleness window.
		return
	}
}
