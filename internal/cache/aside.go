package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key layout and TTLs. Keys are namespaced per entity so that
// invalidation can target a single post or the listing as a whole.
const (
	latestPostsKey = "founderposts:latest"

	// PostTTL bounds staleness for a single published post.
	PostTTL = 10 * time.Minute
	// LatestTTL is short because the listing is the landing-page query.
	LatestTTL = 60 * time.Second
	// UserTTL bounds staleness for user lookups, notably the admin check on
	// moderation routes. Role changes take effect within this window.
	UserTTL = 5 * time.Minute
)

// FounderPostKey returns the cache key for a single published post.
func FounderPostKey(id uint) string {
	return fmt.Sprintf("founderpost:%d", id)
}

// LatestPostsKey returns the cache key for the newest-first listing.
func LatestPostsKey() string {
	return latestPostsKey
}

// UserKey returns the cache key for a single user.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Aside implements the cache-aside pattern: on hit, dest is populated from
// Redis; on miss, fetch is called (expected to fill dest) and the result is
// stored with the given TTL. All Redis failures fall through to fetch so the
// cache never becomes a dependency for reads.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	c := GetClient()
	if c != nil {
		raw, err := c.Get(ctx, key).Bytes()
		if err == nil {
			if uerr := json.Unmarshal(raw, dest); uerr == nil {
				return nil
			}
			// Corrupt entry, drop it and fall through to the source.
			c.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
	}

	if err := fetch(); err != nil {
		return err
	}

	if c != nil {
		if raw, merr := json.Marshal(dest); merr == nil {
			if serr := c.Set(ctx, key, raw, ttl).Err(); serr != nil {
				slog.Warn("cache write failed", "key", key, "error", serr)
			}
		}
	}
	return nil
}

// Invalidate removes the given keys. Failures are logged and ignored.
func Invalidate(ctx context.Context, keys ...string) {
	c := GetClient()
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

// InvalidateFounderPost drops both the single-post entry and the listing.
func InvalidateFounderPost(ctx context.Context, id uint) {
	Invalidate(ctx, FounderPostKey(id), latestPostsKey)
}

// InvalidateLatestPosts drops the listing cache. Called whenever a pending
// post is accepted into the published set.
func InvalidateLatestPosts(ctx context.Context) {
	Invalidate(ctx, latestPostsKey)
}
