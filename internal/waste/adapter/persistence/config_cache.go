package persistence

import (
	"context"
	"encoding/json"
	"time"

	"wastetrack/internal/shared/logger"
	"wastetrack/internal/waste/domain/model"

	"github.com/redis/go-redis/v9"
)

// ConfigCache is a read-through Redis cache for each city's active
// configuration, the hottest read in the system. Cache misses and Redis
// failures fall through to MongoDB; a nil client disables caching entirely.
type ConfigCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewConfigCache creates the cache. A nil client is allowed and turns every
// operation into a no-op.
func NewConfigCache(client *redis.Client, ttl time.Duration, log logger.Logger) *ConfigCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ConfigCache{
		client: client,
		ttl:    ttl,
		logger: log.WithComponent("config_cache"),
	}
}

func (c *ConfigCache) key(cityID string) string {
	return "cityconfig:active:" + cityID
}

// Get returns the cached active configuration for a city, or (nil, false)
// on a miss or any Redis error.
func (c *ConfigCache) Get(ctx context.Context, cityID string) (*model.CityConfig, bool) {
	if c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, c.key(cityID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithFields(map[string]interface{}{"cityId": cityID, "error": err.Error()}).
				Warn("Cache read failed, falling through to database")
		}
		return nil, false
	}

	var cfg model.CityConfig
	if err := json.Unmarshal(payload, &cfg); err != nil {
		c.logger.WithFields(map[string]interface{}{"cityId": cityID, "error": err.Error()}).
			Warn("Cached configuration is corrupt, invalidating")
		c.Invalidate(ctx, cityID)
		return nil, false
	}
	return &cfg, true
}

// Set stores a city's active configuration with the cache TTL.
func (c *ConfigCache) Set(ctx context.Context, cfg *model.CityConfig) {
	if c.client == nil || cfg == nil {
		return
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(cfg.CityID), payload, c.ttl).Err(); err != nil {
		c.logger.WithFields(map[string]interface{}{"cityId": cfg.CityID, "error": err.Error()}).
			Warn("Cache write failed")
	}
}

// Invalidate drops the cached entry for a city. Called on every version
// bump, toggle and delete so stale rates never reach billing.
func (c *ConfigCache) Invalidate(ctx context.Context, cityID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(cityID)).Err(); err != nil {
		c.logger.WithFields(map[string]interface{}{"cityId": cityID, "error": err.Error()}).
			Warn("Cache invalidation failed")
	}
}
