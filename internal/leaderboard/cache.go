// internal/leaderboard/cache.go
//
// Optional Redis rank cache. Global and per-chat totals are mirrored into
// sorted sets with ZINCRBY so top-N reads avoid the database. SQLite
// stays the source of truth; cache failures are reported to the caller,
// which logs and falls through.

package leaderboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

// RankCache maintains ZSET mirrors of the ranked views.
type RankCache struct {
	client *redis.Client
}

// NewRankCache pings the server and returns a cache around it.
func NewRankCache(ctx context.Context, opts *redis.Options) (*RankCache, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &RankCache{client: client}, nil
}

// Close releases the underlying connection pool.
func (c *RankCache) Close() error { return c.client.Close() }

func globalKey() string            { return "wordseek:lb:global" }
func chatKey(chatID string) string { return "wordseek:lb:chat:" + chatID }

// Record increments the player's global and per-chat mirrors.
func (c *RankCache) Record(ctx context.Context, w Win) error {
	pipe := c.client.Pipeline()
	pipe.ZIncrBy(ctx, globalKey(), w.Points, w.UserID)
	pipe.ZIncrBy(ctx, chatKey(w.ChatID), w.Points, w.UserID)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("incrementing rank mirrors: %w", err)
	}
	return nil
}

// GlobalTop reads the top of the global mirror. Display names are not
// stored in Redis; callers fill them in from the store.
func (c *RankCache) GlobalTop(ctx context.Context, limit int) ([]Entry, error) {
	return c.top(ctx, globalKey(), limit)
}

// GroupTop reads the top of one chat's mirror.
func (c *RankCache) GroupTop(ctx context.Context, chatID string, limit int) ([]Entry, error) {
	return c.top(ctx, chatKey(chatID), limit)
}

func (c *RankCache) top(ctx context.Context, key string, limit int) ([]Entry, error) {
	zs, err := c.client.ZRevRangeWithScores(ctx, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading rank mirror: %w", err)
	}
	return lo.FilterMap(zs, func(z redis.Z, _ int) (Entry, bool) {
		member, ok := z.Member.(string)
		if !ok || z.Score <= 0 {
			return Entry{}, false
		}
		return Entry{UserID: member, Points: z.Score}, true
	}), nil
}
