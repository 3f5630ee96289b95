package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/shared/logger"
)

// RedisSectionCache caches section lists per project scope in Redis. It is a
// read-through cache: misses and Redis failures both report a miss so the
// caller falls back to the store.
type RedisSectionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisSectionCache creates a section cache with the given entry TTL.
func NewRedisSectionCache(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisSectionCache {
	return &RedisSectionCache{
		client: client,
		ttl:    ttl,
		logger: log.WithComponent("section-cache"),
	}
}

func cacheKey(family model.Family, projectID string) string {
	return "sections:" + string(family) + ":" + projectID
}

// Get returns the cached section list for the scope, if present.
func (c *RedisSectionCache) Get(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, bool) {
	raw, err := c.client.Get(ctx, cacheKey(family, projectID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Section cache read failed", "family", family, "projectID", projectID, "error", err)
		return nil, false
	}

	var sections []*model.SectionDefinition
	if err := json.Unmarshal(raw, &sections); err != nil {
		c.logger.Warn("Section cache entry corrupt, dropping", "family", family, "projectID", projectID, "error", err)
		c.Invalidate(ctx, family, projectID)
		return nil, false
	}
	return sections, true
}

// Set stores the section list for the scope.
func (c *RedisSectionCache) Set(ctx context.Context, family model.Family, projectID string, sections []*model.SectionDefinition) {
	raw, err := json.Marshal(sections)
	if err != nil {
		c.logger.Warn("Failed to serialize section list", "family", family, "projectID", projectID, "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(family, projectID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Section cache write failed", "family", family, "projectID", projectID, "error", err)
	}
}

// Invalidate drops the cached section list for the scope.
func (c *RedisSectionCache) Invalidate(ctx context.Context, family model.Family, projectID string) {
	if err := c.client.Del(ctx, cacheKey(family, projectID)).Err(); err != nil {
		c.logger.Warn("Section cache invalidation failed", "family", family, "projectID", projectID, "error", err)
	}
}
