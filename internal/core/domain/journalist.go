package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Journalist is the identity record a mission order is issued to. NationalID is the natural key.
type Journalist struct {
	ID         uuid.UUID
	NationalID string
	FullName   string
	Phone      string
	Email      *string
	PhotoURL   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewJournalist returns a new journalist with a fresh id
func NewJournalist(nationalID, fullName, phone string, email, photoURL *string) *Journalist {
	now := time.Now().UTC()
	return &Journalist{
		ID:         uuid.New(),
		NationalID: nationalID,
		FullName:   fullName,
		Phone:      phone,
		Email:      email,
		PhotoURL:   photoURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Title is the short name printed on the mission order, the first word of the full name.
func (j *Journalist) Title() string {
	fields := strings.Fields(j.FullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
