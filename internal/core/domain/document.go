package domain

import "github.com/pressid/mission-orders/internal/timeapi"

// MissionOrderDocument holds the fields printed on a mission order together with the QR payload
type MissionOrderDocument struct {
	AssignmentNumber   string
	RegistrationNumber string
	FullName           string
	Title              string
	Organization       string
	Position           string
	MissionType        string
	MissionLocation    string
	StartDate          timeapi.Date
	EndDate            timeapi.Date
	IssuedBy           string
	Payload            string
}

// NewMissionOrderDocument builds the printable view of an assignment loaded with its journalist
func NewMissionOrderDocument(a *Assignment) *MissionOrderDocument {
	doc := &MissionOrderDocument{
		AssignmentNumber:   a.Number,
		RegistrationNumber: a.RegistrationOrNationalID(),
		Organization:       a.Organization,
		Position:           a.Position,
		MissionType:        a.MissionType,
		MissionLocation:    a.MissionLocation,
		StartDate:          a.StartDate,
		EndDate:            a.EndDate,
		IssuedBy:           a.IssuedBy,
		Payload:            a.Payload,
	}
	if a.Journalist != nil {
		doc.FullName = a.Journalist.FullName
		doc.Title = a.Journalist.Title()
	}
	return doc
}
