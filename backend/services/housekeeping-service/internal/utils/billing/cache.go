package billing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/redis/go-redis/v9"
)

// Cache holds the last billing answer. Implementations swallow their own
// errors; a miss just means a fresh fetch.
type Cache interface {
	Get(ctx context.Context) (models.ActiveFlatMap, bool)
	Set(ctx context.Context, m models.ActiveFlatMap)
}

type noopCache struct{}

func (noopCache) Get(context.Context) (models.ActiveFlatMap, bool) { return nil, false }
func (noopCache) Set(context.Context, models.ActiveFlatMap)        {}

// RedisCache stores the map as JSON under Key with TTL.
type RedisCache struct {
	rdb *redis.Client
	Key string
	TTL time.Duration
}

// NewRedisCache returns nil when rdb is nil so callers fall back to no cache.
func NewRedisCache(rdb *redis.Client, key string, ttl time.Duration) Cache {
	if rdb == nil {
		return nil
	}
	return &RedisCache{rdb: rdb, Key: key, TTL: ttl}
}

func (c *RedisCache) Get(ctx context.Context) (models.ActiveFlatMap, bool) {
	val, err := c.rdb.Get(ctx, c.Key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.Logger.WithError(err).Warn("Active flat cache read failed")
		}
		return nil, false
	}
	var m models.ActiveFlatMap
	if err := json.Unmarshal([]byte(val), &m); err != nil {
		utils.Logger.WithError(err).Warn("Active flat cache entry is corrupt")
		return nil, false
	}
	return m, len(m) > 0
}

func (c *RedisCache) Set(ctx context.Context, m models.ActiveFlatMap) {
	if len(m) == 0 {
		return
	}
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.Key, b, c.TTL).Err(); err != nil {
		utils.Logger.WithError(err).Warn("Active flat cache write failed")
	}
}
