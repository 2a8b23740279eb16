package api

import (
	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/pagination"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/timeapi"
)

// Journalist defines model for Journalist.
type Journalist struct {
	Id         uuid.UUID `json:"id"`
	NationalId string    `json:"nationalId"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	Email      *string   `json:"email,omitempty"`
	PhotoUrl   *string   `json:"photoUrl,omitempty"`
}

// Assignment defines model for Assignment.
// Status is the snapshot taken at issuance, CurrentStatus is computed on the request date.
type Assignment struct {
	Id                 uuid.UUID               `json:"id"`
	AssignmentNumber   string                  `json:"assignmentNumber"`
	RegistrationNumber *string                 `json:"registrationNumber,omitempty"`
	Journalist         *Journalist             `json:"journalist,omitempty"`
	Organization       string                  `json:"organization"`
	Position           string                  `json:"position"`
	MissionType        string                  `json:"missionType"`
	MissionLocation    string                  `json:"missionLocation"`
	StartDate          timeapi.Date            `json:"startDate"`
	EndDate            timeapi.Date            `json:"endDate"`
	IssuedBy           string                  `json:"issuedBy"`
	Status             domain.AssignmentStatus `json:"status"`
	CurrentStatus      domain.AssignmentStatus `json:"currentStatus"`
	QRCodeData         string                  `json:"qrCodeData"`
	CreatedAt          timeapi.Time            `json:"createdAt"`
}

// PaginatedMetadata defines model for PaginatedMetadata.
type PaginatedMetadata struct {
	MaxResults uint `json:"max_results"`
	Page       uint `json:"page"`
	Total      uint `json:"total"`
}

// AssignmentsPaginated defines model for AssignmentsPaginated.
type AssignmentsPaginated struct {
	Items []Assignment      `json:"items"`
	Meta  PaginatedMetadata `json:"meta"`
}

// MissionOrderDocument defines model for MissionOrderDocument. QRCodeData is the string to encode in the QR code.
type MissionOrderDocument struct {
	AssignmentNumber   string       `json:"assignmentNumber"`
	RegistrationNumber string       `json:"registrationNumber"`
	FullName           string       `json:"fullName"`
	Title              string       `json:"title"`
	Organization       string       `json:"organization"`
	Position           string       `json:"position"`
	MissionType        string       `json:"missionType"`
	MissionLocation    string       `json:"missionLocation"`
	StartDate          timeapi.Date `json:"startDate"`
	EndDate            timeapi.Date `json:"endDate"`
	IssuedBy           string       `json:"issuedBy"`
	QRCodeData         string       `json:"qrCodeData"`
}

// VerificationResponse defines model for VerificationResponse.
// Assignment and VerificationCount are present whenever the code matched a mission order.
type VerificationResponse struct {
	Success           bool                      `json:"success"`
	Result            domain.VerificationResult `json:"result"`
	Message           string                    `json:"message"`
	Assignment        *Assignment               `json:"assignment,omitempty"`
	VerificationCount *int                      `json:"verificationCount,omitempty"`
}

// VerificationLog defines model for VerificationLog.
type VerificationLog struct {
	Id                uuid.UUID                 `json:"id"`
	VerificationCount *int                      `json:"verificationCount,omitempty"`
	Result            domain.VerificationResult `json:"result"`
	Notes             string                    `json:"notes"`
	VerifiedBy        *string                   `json:"verifiedBy,omitempty"`
	VerifiedAt        timeapi.Time              `json:"verifiedAt"`
}

// Stats defines model for Stats.
type Stats struct {
	Total    int          `json:"total"`
	Active   int          `json:"active"`
	Expired  int          `json:"expired"`
	Upcoming int          `json:"upcoming"`
	Recent   []Assignment `json:"recent"`
}

func journalistResponse(j *domain.Journalist) *Journalist {
	if j == nil {
		return nil
	}
	return &Journalist{
		Id:         j.ID,
		NationalId: j.NationalID,
		FullName:   j.FullName,
		Phone:      j.Phone,
		Email:      j.Email,
		PhotoUrl:   j.PhotoURL,
	}
}

func assignmentResponse(a *domain.Assignment, today timeapi.Date) Assignment {
	return Assignment{
		Id:                 a.ID,
		AssignmentNumber:   a.Number,
		RegistrationNumber: a.RegistrationNumber,
		Journalist:         journalistResponse(a.Journalist),
		Organization:       a.Organization,
		Position:           a.Position,
		MissionType:        a.MissionType,
		MissionLocation:    a.MissionLocation,
		StartDate:          a.StartDate,
		EndDate:            a.EndDate,
		IssuedBy:           a.IssuedBy,
		Status:             a.Status,
		CurrentStatus:      domain.ClassifyStatus(today, a.StartDate, a.EndDate),
		QRCodeData:         a.Payload,
		CreatedAt:          timeapi.Time(a.CreatedAt),
	}
}

func assignmentsResponse(assignments []*domain.Assignment, today timeapi.Date) []Assignment {
	resp := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		resp = append(resp, assignmentResponse(a, today))
	}
	return resp
}

func assignmentsPaginatedResponse(assignments []*domain.Assignment, filter *pagination.Filter, total uint, today timeapi.Date) AssignmentsPaginated {
	resp := AssignmentsPaginated{
		Items: assignmentsResponse(assignments, today),
		Meta: PaginatedMetadata{
			MaxResults: filter.GetLimit(),
			Page:       1, // default
			Total:      total,
		},
	}
	if filter != nil && filter.Page != nil && *filter.Page > 0 {
		resp.Meta.Page = *filter.Page
	}
	return resp
}

func documentResponse(doc *domain.MissionOrderDocument) MissionOrderDocument {
	return MissionOrderDocument{
		AssignmentNumber:   doc.AssignmentNumber,
		RegistrationNumber: doc.RegistrationNumber,
		FullName:           doc.FullName,
		Title:              doc.Title,
		Organization:       doc.Organization,
		Position:           doc.Position,
		MissionType:        doc.MissionType,
		MissionLocation:    doc.MissionLocation,
		StartDate:          doc.StartDate,
		EndDate:            doc.EndDate,
		IssuedBy:           doc.IssuedBy,
		QRCodeData:         doc.Payload,
	}
}

func verificationResponse(o *domain.VerificationOutcome, today timeapi.Date) VerificationResponse {
	resp := VerificationResponse{
		Success: o.Success,
		Result:  o.Result,
		Message: o.Message,
	}
	if o.Assignment != nil {
		a := assignmentResponse(o.Assignment, today)
		resp.Assignment = &a
		count := o.VerificationCount
		resp.VerificationCount = &count
	}
	return resp
}

func verificationLogsResponse(logs []*domain.VerificationLog) []VerificationLog {
	resp := make([]VerificationLog, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, VerificationLog{
			Id:                l.ID,
			VerificationCount: l.Count,
			Result:            l.Result,
			Notes:             l.Notes,
			VerifiedBy:        l.VerifiedBy,
			VerifiedAt:        timeapi.Time(l.VerifiedAt),
		})
	}
	return resp
}

func statsResponse(d *ports.Dashboard, today timeapi.Date) Stats {
	return Stats{
		Total:    d.Stats.Total,
		Active:   d.Stats.Active,
		Expired:  d.Stats.Expired,
		Upcoming: d.Stats.Upcoming,
		Recent:   assignmentsResponse(d.Recent, today),
	}
}

