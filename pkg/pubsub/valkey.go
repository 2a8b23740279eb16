package pubsub

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/pressid/mission-orders/internal/log"
)

type valkeyClient struct {
	client valkey.Client
}

// NewValKeyClient returns a new pubsub client based on Valkey
func NewValKeyClient(client valkey.Client) Client {
	return &valkeyClient{
		client: client,
	}
}

// Publish publishes a new topic payload
func (vk *valkeyClient) Publish(ctx context.Context, topic string, event Event) error {
	msg, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	return vk.client.Do(ctx, vk.client.B().Publish().Channel(topic).Message(string(msg)).Build()).Error()
}

// Subscribe adds a topic to the subscriber. Messages are delivered until ctx is done.
func (vk *valkeyClient) Subscribe(ctx context.Context, topic string, callback EventHandler) error {
	go func() {
		err := vk.client.Receive(ctx, vk.client.B().Subscribe().Channel(topic).Build(), func(msg valkey.PubSubMessage) {
			handle(ctx, topic, callback, Message(msg.Message))
		})
		if err != nil && ctx.Err() == nil {
			log.Error(ctx, "error subscribing to topic", "topic", topic, "err", err)
		}
	}()
	return nil
}

// Close closes the pubsub client
func (vk *valkeyClient) Close() error {
	vk.client.Close()
	return nil
}
