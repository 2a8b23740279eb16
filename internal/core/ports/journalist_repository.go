package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/db"
)

// JournalistRepository is the storage of journalist identity records.
// Write methods accept an optional db.Querier so they can join a transaction. A nil conn uses the pool.
type JournalistRepository interface {
	Save(ctx context.Context, conn db.Querier, journalist *domain.Journalist) error
	GetByNationalID(ctx context.Context, conn db.Querier, nationalID string) (*domain.Journalist, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Journalist, error)
}
