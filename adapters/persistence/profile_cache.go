package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jackiexiao/hackclub/internal/application/service"
	"github.com/Jackiexiao/hackclub/internal/domain/profile"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

const profileCacheKeyPrefix = "profile:slug:"

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisProfileCache(client *redis.Client, ttl time.Duration, log logger.Logger) service.ProfileCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisProfileCache{client: client, ttl: ttl, logger: log}
}

func cacheKey(slug string) string {
	return profileCacheKeyPrefix + slug
}

func (c *redisProfileCache) GetBySlug(ctx context.Context, slug string) (*profile.UserProfile, error) {
	raw, err := c.client.Get(ctx, cacheKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read profile cache: %w", err)
	}

	p := &profile.UserProfile{}
	if err := json.Unmarshal(raw, p); err != nil {
		// Stale or corrupt entry; treat as a miss and drop it.
		c.client.Del(ctx, cacheKey(slug))
		return nil, nil
	}
	return p, nil
}

func (c *redisProfileCache) SetBySlug(ctx context.Context, p *profile.UserProfile) error {
	if p == nil || p.Slug == nil {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile for cache: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(*p.Slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write profile cache: %w", err)
	}
	return nil
}

func (c *redisProfileCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, cacheKey(slug)).Err(); err != nil {
		return fmt.Errorf("invalidate profile cache: %w", err)
	}
	return nil
}
