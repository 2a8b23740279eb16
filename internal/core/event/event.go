package event

import (
	"encoding/json"
	"time"

	"github.com/pressid/mission-orders/pkg/pubsub"
)

const (
	AssignmentIssuedEvent   = "mission-orders.assignment.issued"   // AssignmentIssuedEvent a mission order was issued
	AssignmentVerifiedEvent = "mission-orders.assignment.verified" // AssignmentVerifiedEvent a QR payload was presented for verification
)

// AssignmentIssued defines the assignment issued data
type AssignmentIssued struct {
	AssignmentID     string    `json:"assignmentID"`
	AssignmentNumber string    `json:"assignmentNumber"`
	JournalistID     string    `json:"journalistID"`
	Status           string    `json:"status"`
	IssuedAt         time.Time `json:"issuedAt"`
}

// Marshal marshals the event into a pubsub.Message
func (ev *AssignmentIssued) Marshal() (msg pubsub.Message, err error) {
	return json.Marshal(ev)
}

// Unmarshal creates an event from that message
func (ev *AssignmentIssued) Unmarshal(msg pubsub.Message) error {
	return json.Unmarshal(msg, ev)
}

// AssignmentVerified defines the verification data. AssignmentID and AssignmentNumber are empty
// when the presented payload matched no mission order.
type AssignmentVerified struct {
	AssignmentID      string    `json:"assignmentID,omitempty"`
	AssignmentNumber  string    `json:"assignmentNumber,omitempty"`
	Result            string    `json:"result"`
	VerificationCount int       `json:"verificationCount,omitempty"`
	VerifiedBy        string    `json:"verifiedBy,omitempty"`
	VerifiedAt        time.Time `json:"verifiedAt"`
}

// Marshal marshals the event into a pubsub.Message
func (ev *AssignmentVerified) Marshal() (msg pubsub.Message, err error) {
	return json.Marshal(ev)
}

// Unmarshal creates an event from that message
func (ev *AssignmentVerified) Unmarshal(msg pubsub.Message) error {
	return json.Unmarshal(msg, ev)
}
