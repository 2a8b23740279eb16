package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const payloadTimestampLayout = "2006-01-02T15:04:05.000Z"

// ErrPayloadIncomplete is returned when a payload is built from an assignment without journalist
var ErrPayloadIncomplete = errors.New("payload needs an assignment with its journalist")

// Payload is the record embedded in the QR code of a mission order.
// The struct field order is the serialization order. Changing it, a json tag or the
// encoding options breaks verification of every code already issued.
type Payload struct {
	ID                 string `json:"id"`
	AssignmentNumber   string `json:"assignmentNumber"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Journalist         string `json:"journalist"`
	Title              string `json:"title"`
	NationalID         string `json:"nationalId"`
	Organization       string `json:"organization"`
	Position           string `json:"position"`
	Mission            string `json:"mission"`
	Location           string `json:"location"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	IssuedBy           string `json:"issuedBy"`
	Signature          string `json:"signature"`
	Timestamp          string `json:"timestamp"`
}

// NewPayload builds the payload of an assignment with a fresh unique id.
// Two calls with the same assignment never return the same payload.
func NewPayload(a *Assignment, issuedAt time.Time) (*Payload, error) {
	if a == nil || a.Journalist == nil {
		return nil, ErrPayloadIncomplete
	}
	var registration string
	if a.RegistrationNumber != nil {
		registration = *a.RegistrationNumber
	}
	return &Payload{
		ID:                 uuid.NewString(),
		AssignmentNumber:   a.Number,
		RegistrationNumber: registration,
		Journalist:         a.Journalist.FullName,
		Title:              a.Journalist.Title(),
		NationalID:         a.Journalist.NationalID,
		Organization:       a.Organization,
		Position:           a.Position,
		Mission:            a.MissionType,
		Location:           a.MissionLocation,
		StartDate:          a.StartDate.String(),
		EndDate:            a.EndDate.String(),
		IssuedBy:           a.IssuedBy,
		Signature:          a.SignatureHash,
		Timestamp:          issuedAt.UTC().Format(payloadTimestampLayout),
	}, nil
}

// Serialize returns the canonical string stored with the assignment and encoded in the QR code.
// HTML characters are not escaped so the string scanned from a printed code reads as issued.
func (p *Payload) Serialize() (string, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// ParsePayload decodes a presented payload. It is informative only: verification matches
// the raw string, never the decoded fields.
func ParsePayload(s string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
