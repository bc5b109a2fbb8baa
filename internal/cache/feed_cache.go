package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	dom "github.com/anousone23/twitter-clone/internal/domain"
)

const (
	keyAll       = "feed:all"
	keyUser      = "feed:user:"
	keyFollowing = "feed:following:"
)

// FeedCache caches post listings in Redis. Any write that can change a feed
// (post create/delete, comment, like toggle, follow toggle) invalidates the
// whole namespace; listings are cheap to rebuild and the TTL is short anyway.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewFeedCache returns a new FeedCache.
func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

// GetAll returns the cached global feed or nil on miss.
func (c *FeedCache) GetAll(ctx context.Context) ([]dom.Post, error) {
	return c.get(ctx, keyAll)
}

// SetAll stores the global feed.
func (c *FeedCache) SetAll(ctx context.Context, posts []dom.Post) error {
	return c.set(ctx, keyAll, posts)
}

// GetUser returns the cached feed for a username or nil on miss.
func (c *FeedCache) GetUser(ctx context.Context, username string) ([]dom.Post, error) {
	return c.get(ctx, keyUser+username)
}

// SetUser stores a user's feed.
func (c *FeedCache) SetUser(ctx context.Context, username string, posts []dom.Post) error {
	return c.set(ctx, keyUser+username, posts)
}

// GetFollowing returns the cached following feed for a user ID or nil on miss.
func (c *FeedCache) GetFollowing(ctx context.Context, userID int64) ([]dom.Post, error) {
	return c.get(ctx, keyFollowing+strconv.FormatInt(userID, 10))
}

// SetFollowing stores a user's following feed.
func (c *FeedCache) SetFollowing(ctx context.Context, userID int64, posts []dom.Post) error {
	return c.set(ctx, keyFollowing+strconv.FormatInt(userID, 10), posts)
}

// InvalidateAll removes every cached feed.
func (c *FeedCache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Del(ctx, keyAll).Err(); err != nil {
		return err
	}
	for _, pattern := range []string{keyUser + "*", keyFollowing + "*"} {
		iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (c *FeedCache) get(ctx context.Context, key string) ([]dom.Post, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var posts []dom.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *FeedCache) set(ctx context.Context, key string, posts []dom.Post) error {
	b, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}
