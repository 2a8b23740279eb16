package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/pressid/mission-orders/internal/config"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/internal/redis"
)

const (
	ForEver = 0 * time.Second // ForEver It can be cached forever
)

// Cache interface propose an interface that any cache should adhere
type Cache interface {
	// Set sets a value in the caches accessible by the key. The ttl param is the maximum time to live in the cache
	// a ttl=0 means that the entry could be cached forever
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Get searches for a non expired entry in the cache and stores it in value, that must be a pointer.
	// You should only trust value if the returned bool is true
	Get(ctx context.Context, key string, value any) bool
	// Exists tells whether a key exists in the cache with a valid ttl
	Exists(ctx context.Context, key string) bool
	// Delete removes an entry from the cache.
	Delete(ctx context.Context, key string) error
}

// NewCacheClient creates a new cache client based on the configuration
func NewCacheClient(ctx context.Context, cfg config.Configuration) (Cache, error) {
	switch cfg.Cache.Provider {
	case config.CacheProviderRedis:
		rdb, err := redis.Open(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.Cache.Url)
			return nil, err
		}
		return NewRedisCache(rdb), nil
	case config.CacheProviderValKey:
		client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{cfg.Cache.Url}})
		if err != nil {
			log.Error(ctx, "cannot connect to valkey", "err", err, "host", cfg.Cache.Url)
			return nil, err
		}
		return NewValKeyCache(client), nil
	case config.CacheProviderMemory, "":
		return NewMemoryCache(), nil
	}
	return nil, fmt.Errorf("unknown cache provider <%s>", cfg.Cache.Provider)
}
