package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Open opens a connection to redis and checks it answers
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := Status(ctx, rdb); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Status returns nil of redis status is ok. Otherwise a redis status err
func Status(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}

// Pinger adapts a redis client to the health checker
type Pinger struct {
	Client *redis.Client
}

// Ping returns the redis status
func (p Pinger) Ping(ctx context.Context) error {
	return Status(ctx, p.Client)
}
