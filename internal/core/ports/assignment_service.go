package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/pagination"
	"github.com/pressid/mission-orders/internal/sqltools"
	"github.com/pressid/mission-orders/internal/timeapi"
)

// Constants defining sort by fields passed from the API
const (
	AssignmentCreatedAt   sqltools.SQLFieldName = "assignments.created_at"
	AssignmentStartDate   sqltools.SQLFieldName = "assignments.start_date"
	AssignmentEndDate     sqltools.SQLFieldName = "assignments.end_date"
	AssignmentNumberField sqltools.SQLFieldName = "assignments.assignment_number"
)

// AssignmentsFilter filters the mission order list.
// Query matches, case insensitive, the journalist name, the assignment number, the mission type or the location.
type AssignmentsFilter struct {
	Query        *string
	Status       *domain.AssignmentStatus
	JournalistID *uuid.UUID
	Pagination   *pagination.Filter
	OrderBy      sqltools.OrderByFilters
}

// NewAssignmentsFilter returns a filter sorted by creation date, newest first, unless other order is added
func NewAssignmentsFilter(query *string, status *domain.AssignmentStatus, maxResults, page *uint) *AssignmentsFilter {
	f := &AssignmentsFilter{
		Status:     status,
		Pagination: pagination.NewFilter(maxResults, page),
	}
	if query != nil && *query != "" {
		f.Query = query
	}
	return f
}

// AssignmentService defines the mission order issuance and back office operations
type AssignmentService interface {
	Issue(ctx context.Context, req *IssueAssignmentRequest) (*domain.Assignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	GetAll(ctx context.Context, filter *AssignmentsFilter) ([]*domain.Assignment, uint, error)
	Document(ctx context.Context, id uuid.UUID) (*domain.MissionOrderDocument, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

// IssueAssignmentRequest holds the issuance form. Organization and Position fall back to the
// configured issuer defaults when empty.
type IssueAssignmentRequest struct {
	Journalist         JournalistRequest
	RegistrationNumber *string
	Organization       string
	Position           string
	MissionType        string
	MissionLocation    string
	StartDate          timeapi.Date
	EndDate            timeapi.Date
	IssuedBy           string
}

// Dashboard is the back office summary: counts by status and the latest mission orders
type Dashboard struct {
	Stats  domain.AssignmentStats
	Recent []*domain.Assignment
}
