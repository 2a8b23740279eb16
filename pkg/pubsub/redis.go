package pubsub

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/pressid/mission-orders/internal/log"
)

// RedisClient struct
type RedisClient struct {
	conn *redis.Client
}

// NewRedis returns a redis pubsub client
func NewRedis(rdb *redis.Client) *RedisClient {
	return &RedisClient{rdb}
}

// Publish publishes a new topic payload
func (rdb *RedisClient) Publish(ctx context.Context, topic string, payload Event) error {
	msg, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	return rdb.conn.Publish(ctx, topic, []byte(msg)).Err()
}

// Subscribe adds a topic to the subscriber
func (rdb *RedisClient) Subscribe(ctx context.Context, topic string, callback EventHandler) error {
	sub := rdb.conn.Subscribe(ctx, topic)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	ch := sub.Channel()
	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if event.Channel != topic {
					log.Error(ctx, "msg channel != topic", "channel", event.Channel, "topic", topic)
					continue
				}
				handle(ctx, topic, callback, Message(event.Payload))
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Close closes the redis connection
func (rdb *RedisClient) Close() error {
	return rdb.conn.Close()
}
