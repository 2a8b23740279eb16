package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/common"
	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/event"
	"github.com/pressid/mission-orders/internal/core/pagination"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/db"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/internal/metrics"
	"github.com/pressid/mission-orders/internal/repositories"
	"github.com/pressid/mission-orders/internal/timeapi"
	"github.com/pressid/mission-orders/pkg/pubsub"
)

const (
	assignmentNumberAttempts = 3
	dashboardRecentSize      = 5
)

// AssignmentCfg assignment service configuration.
// Organization and Position are printed when the request leaves them empty.
// Location decides the calendar day used to compute the initial status.
type AssignmentCfg struct {
	Organization string
	Position     string
	Location     *time.Location
	Now          func() time.Time
}

type assignment struct {
	cfg         AssignmentCfg
	tx          db.Transactor
	journalists ports.JournalistService
	repo        ports.AssignmentRepository
	publisher   pubsub.Publisher
	metrics     *metrics.Metrics
}

// NewAssignment creates a new assignment service. publisher and m may be nil.
func NewAssignment(cfg AssignmentCfg, tx db.Transactor, journalists ports.JournalistService, repo ports.AssignmentRepository, publisher pubsub.Publisher, m *metrics.Metrics) ports.AssignmentService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &assignment{
		cfg:         cfg,
		tx:          tx,
		journalists: journalists,
		repo:        repo,
		publisher:   publisher,
		metrics:     m,
	}
}

// Issue creates a mission order. The journalist is resolved and the assignment stored in a single transaction.
func (s *assignment) Issue(ctx context.Context, req *ports.IssueAssignmentRequest) (*domain.Assignment, error) {
	if err := s.normalize(req); err != nil {
		return nil, err
	}

	now := s.cfg.Now()
	status := domain.ClassifyStatus(timeapi.DateOf(now, s.cfg.Location), req.StartDate, req.EndDate)

	var issued *domain.Assignment
	err := s.tx.InTx(ctx, func(conn db.Querier) error {
		j, err := s.journalists.Resolve(ctx, conn, &req.Journalist)
		if err != nil {
			return err
		}
		for attempt := 1; attempt <= assignmentNumberAttempts; attempt++ {
			a, err := s.newAssignment(req, j, status, now)
			if err != nil {
				return err
			}
			err = s.repo.Save(ctx, conn, a)
			if errors.Is(err, repositories.ErrAssignmentNumberTaken) {
				log.Warn(ctx, "assignment number collision", "number", a.Number, "attempt", attempt)
				continue
			}
			if err != nil {
				return fmt.Errorf("saving assignment: %w", err)
			}
			issued = a
			return nil
		}
		return ErrAssignmentNumberExhausted
	})
	if err != nil {
		log.Error(ctx, "issuing assignment", "err", err)
		return nil, err
	}

	log.Info(ctx, "assignment issued", "id", issued.ID, "number", issued.Number, "status", issued.Status)
	s.metrics.IncIssued(string(issued.Status))
	s.publish(ctx, event.AssignmentIssuedEvent, &event.AssignmentIssued{
		AssignmentID:     issued.ID.String(),
		AssignmentNumber: issued.Number,
		JournalistID:     issued.JournalistID.String(),
		Status:           string(issued.Status),
		IssuedAt:         issued.CreatedAt,
	})
	return issued, nil
}

// GetByID returns a mission order with its journalist
func (s *assignment) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrAssignmentNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading assignment: %w", err)
	}
	return a, nil
}

// GetAll returns a page of mission orders and the total number of matches
func (s *assignment) GetAll(ctx context.Context, filter *ports.AssignmentsFilter) ([]*domain.Assignment, uint, error) {
	if filter == nil {
		filter = ports.NewAssignmentsFilter(nil, nil, nil, nil)
	}
	if filter.Pagination == nil {
		filter.Pagination = pagination.NewFilter(nil, nil)
	}
	return s.repo.GetAll(ctx, filter)
}

// Document returns the printable mission order
func (s *assignment) Document(ctx context.Context, id uuid.UUID) (*domain.MissionOrderDocument, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.NewMissionOrderDocument(a), nil
}

// Dashboard returns the counts by stored status and the most recent mission orders
func (s *assignment) Dashboard(ctx context.Context) (*ports.Dashboard, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting assignments: %w", err)
	}
	recent, _, err := s.repo.GetAll(ctx, ports.NewAssignmentsFilter(nil, nil, common.ToPointer(uint(dashboardRecentSize)), nil))
	if err != nil {
		return nil, fmt.Errorf("loading recent assignments: %w", err)
	}
	return &ports.Dashboard{Stats: *stats, Recent: recent}, nil
}

func (s *assignment) newAssignment(req *ports.IssueAssignmentRequest, j *domain.Journalist, status domain.AssignmentStatus, now time.Time) (*domain.Assignment, error) {
	number, err := domain.NewAssignmentNumber(now)
	if err != nil {
		return nil, err
	}
	signature, encryptionKey := domain.NewSecureTokens()
	a := &domain.Assignment{
		ID:                 uuid.New(),
		Number:             number,
		JournalistID:       j.ID,
		Journalist:         j,
		RegistrationNumber: req.RegistrationNumber,
		Organization:       req.Organization,
		Position:           req.Position,
		MissionType:        req.MissionType,
		MissionLocation:    req.MissionLocation,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IssuedBy:           req.IssuedBy,
		Status:             status,
		SignatureHash:      signature,
		EncryptionKey:      encryptionKey,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}
	payload, err := domain.NewPayload(a, now)
	if err != nil {
		return nil, err
	}
	if a.Payload, err = payload.Serialize(); err != nil {
		return nil, fmt.Errorf("serializing payload: %w", err)
	}
	return a, nil
}

// normalize trims the request, applies the configured defaults and validates it
func (s *assignment) normalize(req *ports.IssueAssignmentRequest) error {
	if req == nil {
		return &ValidationError{Field: "request", Message: "is required"}
	}
	j := &req.Journalist
	j.NationalID = strings.TrimSpace(j.NationalID)
	j.FullName = strings.TrimSpace(j.FullName)
	j.Phone = strings.TrimSpace(j.Phone)
	j.Email = common.NonBlank(j.Email)
	j.PhotoURL = common.NonBlank(j.PhotoURL)
	req.RegistrationNumber = common.NonBlank(req.RegistrationNumber)
	req.Organization = strings.TrimSpace(req.Organization)
	req.Position = strings.TrimSpace(req.Position)
	req.MissionType = strings.TrimSpace(req.MissionType)
	req.MissionLocation = strings.TrimSpace(req.MissionLocation)
	req.IssuedBy = strings.TrimSpace(req.IssuedBy)
	if req.Organization == "" {
		req.Organization = s.cfg.Organization
	}
	if req.Position == "" {
		req.Position = s.cfg.Position
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{"nationalId", j.NationalID},
		{"fullName", j.FullName},
		{"phone", j.Phone},
		{"missionType", req.MissionType},
		{"missionLocation", req.MissionLocation},
		{"issuedBy", req.IssuedBy},
		{"organization", req.Organization},
		{"position", req.Position},
	} {
		if f.value == "" {
			return newRequiredFieldError(f.name)
		}
	}
	if req.StartDate.IsZero() {
		return newRequiredFieldError("startDate")
	}
	if req.EndDate.IsZero() {
		return newRequiredFieldError("endDate")
	}
	if req.StartDate.After(req.EndDate) {
		return ErrInvalidValidityWindow
	}
	return nil
}

func (s *assignment) publish(ctx context.Context, topic string, ev pubsub.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, ev); err != nil {
		log.Warn(ctx, "publishing event", "topic", topic, "err", err)
	}
}
