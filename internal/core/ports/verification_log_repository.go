package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
)

// VerificationLogRepository is the append only verification audit log
type VerificationLogRepository interface {
	Save(ctx context.Context, entry *domain.VerificationLog) error
	// LatestCount returns the count of the most recent entry of the assignment, 0 if there is none
	LatestCount(ctx context.Context, assignmentID uuid.UUID) (int, error)
	GetByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.VerificationLog, error)
}
