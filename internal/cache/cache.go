// Package cache is a typed facade over Redis. Every key namespace owns its
// value encoding: match counters are plain integers manipulated with INCR,
// list pages are JSON blobs. Callers never read a key from one namespace
// through the accessors of another.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func matchCountKey(userID int) string {
	return fmt.Sprintf("match:count:%d", userID)
}

// IncrMatchCount atomically increments the actor's match counter and returns
// the new value. The TTL is set only when the counter is created, so the
// window stays anchored to the first attempt and later attempts do not
// extend it.
func (c *Cache) IncrMatchCount(ctx context.Context, userID int, window time.Duration) (int64, error) {
	key := matchCountKey(userID)
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// ListPageKey derives the cache key for one /list result page from the
// requester and the full set of filter, sort and pagination parameters.
// Identical queries map to identical keys.
func ListPageKey(userID int, gender, firstName, lastName string, radiusKm float64, sortOrder string, limit, offset int) string {
	return fmt.Sprintf("users:list:%d:%s:%s:%s:%v:%s:%d:%d",
		userID, gender, firstName, lastName, radiusKm, sortOrder, limit, offset)
}

// GetListPage loads a cached list page into dest. Returns false on a miss.
func (c *Cache) GetListPage(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode cached page: %w", err)
	}
	return true, nil
}

// SetListPage stores a list page as JSON with the given TTL.
func (c *Cache) SetListPage(ctx context.Context, key string, page interface{}, ttl time.Duration) error {
	b, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
