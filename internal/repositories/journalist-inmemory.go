package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/db"
)

type journalistInMemory struct {
	mu          sync.RWMutex
	journalists map[uuid.UUID]domain.Journalist
}

// NewJournalistInMemory returns a journalist repository implemented in memory convenient for testing
func NewJournalistInMemory() *journalistInMemory {
	return &journalistInMemory{journalists: make(map[uuid.UUID]domain.Journalist)}
}

func (j *journalistInMemory) Save(_ context.Context, _ db.Querier, journalist *domain.Journalist) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, stored := range j.journalists {
		if stored.NationalID == journalist.NationalID {
			return ErrJournalistAlreadyExists
		}
	}
	j.journalists[journalist.ID] = *journalist
	return nil
}

func (j *journalistInMemory) GetByNationalID(_ context.Context, _ db.Querier, nationalID string) (*domain.Journalist, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, stored := range j.journalists {
		if stored.NationalID == nationalID {
			return &stored, nil
		}
	}
	return nil, ErrJournalistNotFound
}

func (j *journalistInMemory) GetByID(_ context.Context, id uuid.UUID) (*domain.Journalist, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if stored, found := j.journalists[id]; found {
		return &stored, nil
	}
	return nil, ErrJournalistNotFound
}
