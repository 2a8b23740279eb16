package ports

import (
	"context"

	"github.com/pressid/mission-orders/pkg/pubsub"
)

// NotificationService consumes the mission order events published on the pubsub
type NotificationService interface {
	AssignmentIssued(ctx context.Context, msg pubsub.Message) error
	AssignmentVerified(ctx context.Context, msg pubsub.Message) error
}
