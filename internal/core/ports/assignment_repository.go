package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/db"
)

// AssignmentRepository is the storage of mission orders. Every read returns the assignment
// loaded with its journalist.
type AssignmentRepository interface {
	Save(ctx context.Context, conn db.Querier, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	// GetByPayload returns the assignment whose stored payload equals payload byte for byte.
	// If more than one matches, the most recently created wins.
	GetByPayload(ctx context.Context, payload string) (*domain.Assignment, error)
	GetAll(ctx context.Context, filter *AssignmentsFilter) ([]*domain.Assignment, uint, error)
	Stats(ctx context.Context) (*domain.AssignmentStats, error)
}
