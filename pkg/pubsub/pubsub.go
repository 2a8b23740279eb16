package pubsub

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/pressid/mission-orders/internal/config"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/internal/redis"
)

// Event defines the payload
type Event interface {
	Marshal() (msg Message, err error)
	Unmarshal(msg Message) error
}

// Message is the payload received in a pubsub subscriber. The input for callback functions
type Message []byte

// Publisher sends topics to the pubsub
type Publisher interface {
	Publish(ctx context.Context, topic string, payload Event) error
}

// EventHandler is the type that functions that handle an Event must comply.
type EventHandler func(context.Context, Message) error

// Subscriber subscribes to the pubsub topics. Subscribe returns once the subscription is
// registered and delivers messages in background until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, callback EventHandler) error
}

// Client is formed by the publisher and subscriber
type Client interface {
	Publisher
	Subscriber
	Close() error
}

// NewPubSub creates a new pubsub client on the redis or valkey server configured as cache
func NewPubSub(ctx context.Context, cfg config.Configuration) (Client, error) {
	switch cfg.Cache.Provider {
	case config.CacheProviderRedis:
		rdb, err := redis.Open(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.Cache.Url)
			return nil, err
		}
		return NewRedis(rdb), nil
	case config.CacheProviderValKey:
		client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{cfg.Cache.Url}})
		if err != nil {
			log.Error(ctx, "cannot connect to valkey", "err", err, "host", cfg.Cache.Url)
			return nil, err
		}
		return NewValKeyClient(client), nil
	}
	return nil, fmt.Errorf("pubsub is not available on cache provider <%s>", cfg.Cache.Provider)
}

// handle runs callback recovering from panics so a faulty handler does not stop the subscription
func handle(ctx context.Context, topic string, callback EventHandler, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "pubsub handler panic", "topic", topic, "panic", r)
		}
	}()
	if err := callback(ctx, msg); err != nil {
		log.Error(ctx, "executing callback function", "topic", topic, "err", err)
	}
}
