package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
)

type verificationLogInMemory struct {
	mu      sync.RWMutex
	entries []domain.VerificationLog
}

// NewVerificationLogInMemory returns a verification log repository implemented in memory convenient for testing
func NewVerificationLogInMemory() *verificationLogInMemory {
	return &verificationLogInMemory{}
}

func (v *verificationLogInMemory) Save(_ context.Context, entry *domain.VerificationLog) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = append(v.entries, *entry)
	return nil
}

func (v *verificationLogInMemory) LatestCount(ctx context.Context, assignmentID uuid.UUID) (int, error) {
	entries, _ := v.GetByAssignment(ctx, assignmentID)
	if len(entries) == 0 || entries[0].Count == nil {
		return 0, nil
	}
	return *entries[0].Count, nil
}

func (v *verificationLogInMemory) GetByAssignment(_ context.Context, assignmentID uuid.UUID) ([]*domain.VerificationLog, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	entries := make([]*domain.VerificationLog, 0)
	for i := range v.entries {
		entry := v.entries[i]
		if entry.AssignmentID != nil && *entry.AssignmentID == assignmentID {
			entries = append(entries, &entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].VerifiedAt.Equal(entries[j].VerifiedAt) {
			return entries[i].VerifiedAt.After(entries[j].VerifiedAt)
		}
		return countOf(entries[i]) > countOf(entries[j])
	})
	return entries, nil
}

// All returns every entry in insertion order, failed ones included
func (v *verificationLogInMemory) All() []domain.VerificationLog {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]domain.VerificationLog(nil), v.entries...)
}

func countOf(entry *domain.VerificationLog) int {
	if entry.Count == nil {
		return -1
	}
	return *entry.Count
}
