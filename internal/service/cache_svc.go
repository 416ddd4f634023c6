package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache keys and TTLs for the read projections. Stats change once per daily
// run but the spreadsheet polls aggressively, hence the short TTL.
const (
	StatsCacheKey    = "list:stats"
	ChannelsCacheKey = "list:channels"
	VideosCacheKey   = "list:videos"

	StatsCacheTTL = time.Minute
	ListCacheTTL  = 15 * time.Minute
)

// CacheService is a Redis cache-aside layer for the list projections. With
// no Redis configured every operation is a no-op and reads fall through to
// the database.
type CacheService struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

func NewCacheService(redisURL string, logger zerolog.Logger) *CacheService {
	if redisURL == "" {
		logger.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{logger: logger}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return &CacheService{logger: logger}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{logger: logger}
	}

	logger.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb, logger: logger}
}

// Client returns the underlying Redis client for health checks. May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetList retrieves a cached projection. Returns nil when not cached or
// caching is disabled.
func (c *CacheService) GetList(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetList stores a projection under the given key.
func (c *CacheService) SetList(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// Invalidate drops the given projections after a write.
func (c *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("cache: invalidate failed")
	}
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
