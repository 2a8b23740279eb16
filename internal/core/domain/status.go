package domain

import "github.com/pressid/mission-orders/internal/timeapi"

// AssignmentStatus is the temporal classification of a mission order validity window.
type AssignmentStatus string

const (
	AssignmentStatusUpcoming AssignmentStatus = "upcoming" // AssignmentStatusUpcoming the window has not started yet
	AssignmentStatusActive   AssignmentStatus = "active"   // AssignmentStatusActive today is inside the window, bounds included
	AssignmentStatusExpired  AssignmentStatus = "expired"  // AssignmentStatusExpired the window ended before today
)

// ClassifyStatus maps a validity window to its status as seen on today.
// A window starting or ending today is active.
func ClassifyStatus(today, start, end timeapi.Date) AssignmentStatus {
	if start.After(today) {
		return AssignmentStatusUpcoming
	}
	if end.Before(today) {
		return AssignmentStatusExpired
	}
	return AssignmentStatusActive
}

// IsValid reports whether s is one of the known statuses
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusUpcoming, AssignmentStatusActive, AssignmentStatusExpired:
		return true
	}
	return false
}
