package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/common"
	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/event"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/internal/metrics"
	"github.com/pressid/mission-orders/internal/repositories"
	"github.com/pressid/mission-orders/internal/timeapi"
	"github.com/pressid/mission-orders/pkg/cache"
	"github.com/pressid/mission-orders/pkg/pubsub"
)

const payloadCacheKeyPrefix = "mission-orders:payload:"

const (
	notesNotFound = "QR code not found in the system"
	notesExpired  = "Attempt to use an expired mission order"
	notesSuccess  = "Verified successfully"

	messageNotFound = "Invalid QR code or not found in the system"
	messageExpired  = "Mission order expired"
	messageSuccess  = "Verified successfully"
)

// VerificationCfg verification service configuration.
// Location decides the calendar day an assignment is checked against. CacheTTL is how long
// a payload to assignment match is remembered.
type VerificationCfg struct {
	Location *time.Location
	Now      func() time.Time
	CacheTTL time.Duration
}

type verification struct {
	cfg         VerificationCfg
	assignments ports.AssignmentRepository
	logs        ports.VerificationLogRepository
	cache       cache.Cache
	publisher   pubsub.Publisher
	metrics     *metrics.Metrics
}

// NewVerification creates a new verification service. cache, publisher and m may be nil.
func NewVerification(cfg VerificationCfg, assignments ports.AssignmentRepository, logs ports.VerificationLogRepository, c cache.Cache, publisher pubsub.Publisher, m *metrics.Metrics) ports.VerificationService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &verification{
		cfg:         cfg,
		assignments: assignments,
		logs:        logs,
		cache:       c,
		publisher:   publisher,
		metrics:     m,
	}
}

// Verify matches the presented payload and records the attempt.
// Every call appends exactly one log entry unless the store fails.
// The counter is read then written without locking, concurrent verifications of the same
// assignment may record the same count.
func (s *verification) Verify(ctx context.Context, req *ports.VerifyRequest) (*domain.VerificationOutcome, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveVerify(time.Since(start)) }()

	now := s.cfg.Now()
	verifiedBy := common.NonBlank(req.VerifiedBy)

	a, err := s.lookup(ctx, req.Payload)
	if errors.Is(err, repositories.ErrAssignmentNotFound) {
		return s.notFound(ctx, verifiedBy, now)
	}
	if err != nil {
		log.Error(ctx, "looking up payload", "err", err)
		return nil, fmt.Errorf("%w: looking up payload: %w", ErrVerificationUnavailable, err)
	}

	latest, err := s.logs.LatestCount(ctx, a.ID)
	if err != nil {
		log.Error(ctx, "reading verification count", "err", err, "assignment", a.ID)
		return nil, fmt.Errorf("%w: reading verification count: %w", ErrVerificationUnavailable, err)
	}
	count := latest + 1

	outcome := &domain.VerificationOutcome{
		Success:           true,
		Result:            domain.VerificationResultSuccess,
		Message:           messageSuccess,
		Assignment:        a,
		VerificationCount: count,
	}
	notes := notesSuccess
	if a.IsExpired(timeapi.DateOf(now, s.cfg.Location)) {
		outcome.Success = false
		outcome.Result = domain.VerificationResultExpired
		outcome.Message = messageExpired
		notes = notesExpired
	}

	entry := domain.NewVerificationLog(&a.ID, &count, outcome.Result, notes, verifiedBy, now)
	if err := s.logs.Save(ctx, entry); err != nil {
		log.Error(ctx, "appending verification log", "err", err, "assignment", a.ID)
		return nil, fmt.Errorf("%w: appending verification log: %w", ErrVerificationUnavailable, err)
	}

	log.Info(ctx, "assignment verified", "assignment", a.ID, "result", outcome.Result, "count", count)
	s.done(ctx, outcome, entry)
	return outcome, nil
}

// History returns the verification log of an assignment, most recent first
func (s *verification) History(ctx context.Context, assignmentID uuid.UUID) ([]*domain.VerificationLog, error) {
	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("loading assignment: %w", err)
	}
	return s.logs.GetByAssignment(ctx, assignmentID)
}

func (s *verification) notFound(ctx context.Context, verifiedBy *string, now time.Time) (*domain.VerificationOutcome, error) {
	entry := domain.NewVerificationLog(nil, nil, domain.VerificationResultFailed, notesNotFound, verifiedBy, now)
	if err := s.logs.Save(ctx, entry); err != nil {
		log.Error(ctx, "appending failed verification log", "err", err)
		return nil, fmt.Errorf("%w: appending verification log: %w", ErrVerificationUnavailable, err)
	}
	log.Info(ctx, "payload matched no assignment")
	outcome := &domain.VerificationOutcome{
		Success: false,
		Result:  domain.VerificationResultFailed,
		Message: messageNotFound,
	}
	s.done(ctx, outcome, entry)
	return outcome, nil
}

// lookup finds the assignment of a payload, asking the cache first. Only matches are cached.
func (s *verification) lookup(ctx context.Context, payload string) (*domain.Assignment, error) {
	key := payloadCacheKey(payload)
	if s.cache != nil {
		var cached string
		if s.cache.Get(ctx, key, &cached) {
			if id, err := uuid.Parse(cached); err == nil {
				a, err := s.assignments.GetByID(ctx, id)
				if err == nil && a.Payload == payload {
					s.metrics.IncCacheLookup("hit")
					return a, nil
				}
				if err != nil && !errors.Is(err, repositories.ErrAssignmentNotFound) {
					return nil, err
				}
			}
			log.Debug(ctx, "stale payload cache entry", "key", key)
		}
		s.metrics.IncCacheLookup("miss")
	}

	a, err := s.assignments.GetByPayload(ctx, payload)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, a.ID.String(), s.cfg.CacheTTL); err != nil {
			log.Warn(ctx, "caching payload lookup", "err", err)
		}
	}
	return a, nil
}

func (s *verification) done(ctx context.Context, outcome *domain.VerificationOutcome, entry *domain.VerificationLog) {
	s.metrics.IncVerification(string(outcome.Result))
	if s.publisher == nil {
		return
	}
	ev := &event.AssignmentVerified{
		Result:            string(outcome.Result),
		VerificationCount: outcome.VerificationCount,
		VerifiedBy:        common.DerefOr(entry.VerifiedBy, ""),
		VerifiedAt:        entry.VerifiedAt,
	}
	if outcome.Assignment != nil {
		ev.AssignmentID = outcome.Assignment.ID.String()
		ev.AssignmentNumber = outcome.Assignment.Number
	}
	if err := s.publisher.Publish(ctx, event.AssignmentVerifiedEvent, ev); err != nil {
		log.Warn(ctx, "publishing event", "topic", event.AssignmentVerifiedEvent, "err", err)
	}
}

func payloadCacheKey(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return payloadCacheKeyPrefix + hex.EncodeToString(sum[:])
}
