package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/db"
)

type assignmentInMemory struct {
	mu          sync.RWMutex
	assignments []domain.Assignment
}

// NewAssignmentInMemory returns an assignment repository implemented in memory convenient for testing.
// Assignments are returned with the journalist they were saved with.
func NewAssignmentInMemory() *assignmentInMemory {
	return &assignmentInMemory{}
}

func (a *assignmentInMemory) Save(_ context.Context, _ db.Querier, assignment *domain.Assignment) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, stored := range a.assignments {
		if stored.Number == assignment.Number {
			return ErrAssignmentNumberTaken
		}
	}
	a.assignments = append(a.assignments, *assignment)
	return nil
}

func (a *assignmentInMemory) GetByID(_ context.Context, id uuid.UUID) (*domain.Assignment, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, stored := range a.assignments {
		if stored.ID == id {
			return &stored, nil
		}
	}
	return nil, ErrAssignmentNotFound
}

func (a *assignmentInMemory) GetByPayload(_ context.Context, payload string) (*domain.Assignment, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var found *domain.Assignment
	for i := range a.assignments {
		stored := a.assignments[i]
		if stored.Payload != payload {
			continue
		}
		if found == nil || stored.CreatedAt.After(found.CreatedAt) {
			found = &stored
		}
	}
	if found == nil {
		return nil, ErrAssignmentNotFound
	}
	return found, nil
}

// GetAll filters like the postgres repository does. Only the default order, newest first, is supported.
func (a *assignmentInMemory) GetAll(_ context.Context, filter *ports.AssignmentsFilter) ([]*domain.Assignment, uint, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	matches := make([]*domain.Assignment, 0)
	for i := range a.assignments {
		stored := a.assignments[i]
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		if filter.JournalistID != nil && stored.JournalistID != *filter.JournalistID {
			continue
		}
		if filter.Query != nil && !matchesQuery(&stored, *filter.Query) {
			continue
		}
		matches = append(matches, &stored)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	count := uint(len(matches))
	offset, limit := filter.Pagination.GetOffset(), filter.Pagination.GetLimit()
	if offset >= count {
		return []*domain.Assignment{}, count, nil
	}
	end := offset + limit
	if end > count {
		end = count
	}
	return matches[offset:end], count, nil
}

func (a *assignmentInMemory) Stats(_ context.Context) (*domain.AssignmentStats, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var s domain.AssignmentStats
	for _, stored := range a.assignments {
		s.Total++
		switch stored.Status {
		case domain.AssignmentStatusActive:
			s.Active++
		case domain.AssignmentStatusExpired:
			s.Expired++
		case domain.AssignmentStatusUpcoming:
			s.Upcoming++
		}
	}
	return &s, nil
}

func matchesQuery(a *domain.Assignment, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	fields := []string{a.Number, a.MissionType, a.MissionLocation}
	if a.Journalist != nil {
		fields = append(fields, a.Journalist.FullName)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
