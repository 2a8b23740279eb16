package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerificationResult is the category stored on each verification log entry
type VerificationResult string

const (
	VerificationResultSuccess VerificationResult = "success" // VerificationResultSuccess payload matched and the window is open
	VerificationResultExpired VerificationResult = "expired" // VerificationResultExpired payload matched but the window has ended
	VerificationResultFailed  VerificationResult = "failed"  // VerificationResultFailed payload matched no mission order
)

// VerificationLog is an append only audit entry. AssignmentID and Count are nil when the
// presented payload matched no mission order.
type VerificationLog struct {
	ID           uuid.UUID
	AssignmentID *uuid.UUID
	Count        *int
	Result       VerificationResult
	Notes        string
	VerifiedBy   *string
	VerifiedAt   time.Time
}

// NewVerificationLog returns a log entry stamped with verifiedAt
func NewVerificationLog(assignmentID *uuid.UUID, count *int, result VerificationResult, notes string, verifiedBy *string, verifiedAt time.Time) *VerificationLog {
	return &VerificationLog{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		Count:        count,
		Result:       result,
		Notes:        notes,
		VerifiedBy:   verifiedBy,
		VerifiedAt:   verifiedAt,
	}
}

// VerificationOutcome is what a verifier gets back after presenting a payload.
// Assignment and VerificationCount are set whenever the payload matched, expired or not.
type VerificationOutcome struct {
	Success           bool
	Result            VerificationResult
	Message           string
	Assignment        *Assignment
	VerificationCount int
}
