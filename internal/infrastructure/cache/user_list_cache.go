// Package cache keeps rendered user list pages in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/user-service/internal/application"
	"github.com/oksasatya/user-service/pkg/helpers"
)

const DefaultListTTL = 20 * time.Second

// UserListCache stores pages under a generation number. Invalidate bumps the
// generation, so every page written before it becomes unreachable and
// expires on its own TTL.
type UserListCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewUserListCache(rdb *redis.Client, prefix string, ttl time.Duration) *UserListCache {
	if ttl <= 0 {
		ttl = DefaultListTTL
	}
	return &UserListCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *UserListCache) generationKey() string {
	return c.prefix + ":users:list:gen"
}

func (c *UserListCache) pageKey(gen int64, pageIndex, pageSize int) string {
	return fmt.Sprintf("%s:users:list:v%d:p%d:s%d", c.prefix, gen, pageIndex, pageSize)
}

func (c *UserListCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *UserListCache) Get(ctx context.Context, pageIndex, pageSize int) (application.CachedPage, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return application.CachedPage{}, err
	}
	page := application.CachedPage{Generation: gen}
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, c.pageKey(gen, pageIndex, pageSize), &page.Users)
	if err != nil {
		return application.CachedPage{}, err
	}
	page.Hit = ok
	return page, nil
}

// Set writes under the generation Get observed, never the current one.
func (c *UserListCache) Set(ctx context.Context, generation int64, pageIndex, pageSize int, users []application.UserResponse) error {
	return helpers.RedisSetJSON(ctx, c.rdb, c.pageKey(generation, pageIndex, pageSize), users, c.ttl)
}

func (c *UserListCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, c.generationKey()).Err()
}

var _ application.ListCache = (*UserListCache)(nil)
