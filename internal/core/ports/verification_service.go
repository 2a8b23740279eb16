package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
)

// VerificationService checks presented QR payloads against issued mission orders
type VerificationService interface {
	// Verify matches payload against the stored payloads and appends one verification log entry.
	// A payload that matches nothing is a failed outcome, not an error. Errors are infrastructure failures.
	Verify(ctx context.Context, req *VerifyRequest) (*domain.VerificationOutcome, error)
	History(ctx context.Context, assignmentID uuid.UUID) ([]*domain.VerificationLog, error)
}

// VerifyRequest is a presented payload and, optionally, who presented it
type VerifyRequest struct {
	Payload    string
	VerifiedBy *string
}
