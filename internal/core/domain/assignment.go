package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/timeapi"
	"github.com/pressid/mission-orders/pkg/rand"
)

const (
	assignmentNumberPrefix     = "AM"
	assignmentNumberSuffixSize = 9
)

// Assignment is a mission order.
//
// Status is a snapshot computed once at issuance and never refreshed; use IsExpired for a live check.
// Payload is the exact string embedded in the QR code and the key verification matches on, byte for byte.
type Assignment struct {
	ID                 uuid.UUID
	Number             string
	JournalistID       uuid.UUID
	Journalist         *Journalist
	RegistrationNumber *string
	Organization       string
	Position           string
	MissionType        string
	MissionLocation    string
	StartDate          timeapi.Date
	EndDate            timeapi.Date
	IssuedBy           string
	Status             AssignmentStatus
	Payload            string
	SignatureHash      string
	EncryptionKey      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewAssignmentNumber returns a human readable assignment number: AM-<unix millis>-<9 base36 chars>.
// Uniqueness is probabilistic, the store rejects duplicates.
func NewAssignmentNumber(now time.Time) (string, error) {
	suffix, err := rand.Base36(assignmentNumberSuffixSize)
	if err != nil {
		return "", fmt.Errorf("generating assignment number: %w", err)
	}
	return fmt.Sprintf("%s-%d-%s", assignmentNumberPrefix, now.UnixMilli(), suffix), nil
}

// NewSecureTokens returns a fresh signature token and encryption key token.
// They are opaque random identifiers, not key material.
func NewSecureTokens() (signature string, encryptionKey string) {
	return uuid.NewString(), uuid.NewString()
}

// IsExpired reports whether the validity window ended before today
func (a *Assignment) IsExpired(today timeapi.Date) bool {
	return a.EndDate.Before(today)
}

// RegistrationOrNationalID returns the registration number printed on the document.
// Journalists without a press card registration number are identified by their national id.
func (a *Assignment) RegistrationOrNationalID() string {
	if a.RegistrationNumber != nil && *a.RegistrationNumber != "" {
		return *a.RegistrationNumber
	}
	if a.Journalist != nil {
		return a.Journalist.NationalID
	}
	return ""
}

// AssignmentStats counts mission orders by their stored status
type AssignmentStats struct {
	Total    int
	Active   int
	Expired  int
	Upcoming int
}
