package services

import (
	"context"
	"errors"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/event"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/pkg/pubsub"
)

type notification struct{}

// NewNotification returns a Notification Service that writes an audit line per event.
// Expired and failed verifications are logged as warnings so they stand out.
func NewNotification() ports.NotificationService {
	return &notification{}
}

func (n *notification) AssignmentIssued(ctx context.Context, msg pubsub.Message) error {
	var ev event.AssignmentIssued
	if err := ev.Unmarshal(msg); err != nil {
		return errors.New("assignmentIssued unexpected data type")
	}
	log.Info(ctx, "mission order issued",
		"assignment", ev.AssignmentID,
		"number", ev.AssignmentNumber,
		"journalist", ev.JournalistID,
		"status", ev.Status,
		"issuedAt", ev.IssuedAt)
	return nil
}

func (n *notification) AssignmentVerified(ctx context.Context, msg pubsub.Message) error {
	var ev event.AssignmentVerified
	if err := ev.Unmarshal(msg); err != nil {
		return errors.New("assignmentVerified unexpected data type")
	}
	args := []any{
		"assignment", ev.AssignmentID,
		"number", ev.AssignmentNumber,
		"result", ev.Result,
		"count", ev.VerificationCount,
		"verifiedBy", ev.VerifiedBy,
		"verifiedAt", ev.VerifiedAt,
	}
	switch domain.VerificationResult(ev.Result) {
	case domain.VerificationResultSuccess:
		log.Info(ctx, "mission order verified", args...)
	case domain.VerificationResultExpired:
		log.Warn(ctx, "expired mission order presented", args...)
	default:
		log.Warn(ctx, "unknown qr code presented", args...)
	}
	return nil
}
