package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pressid/mission-orders/internal/common"
	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/sqltools"
	"github.com/pressid/mission-orders/internal/timeapi"
)

const maxBodySize = 1 << 20

// assignmentSortFields maps the sort names accepted by GET /v1/assignments to columns
var assignmentSortFields = map[string]sqltools.SQLFieldName{
	"createdAt": ports.AssignmentCreatedAt,
	"startDate": ports.AssignmentStartDate,
	"endDate":   ports.AssignmentEndDate,
	"number":    ports.AssignmentNumberField,
}

// CreateAssignmentRequest is the issuance form. Dates are YYYY-MM-DD.
type CreateAssignmentRequest struct {
	FullName           string  `json:"fullName"`
	NationalID         string  `json:"nationalId"`
	Phone              string  `json:"phone"`
	Email              *string `json:"email,omitempty"`
	PhotoURL           *string `json:"photoUrl,omitempty"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	Organization       string  `json:"organization"`
	Position           string  `json:"position"`
	MissionType        string  `json:"missionType"`
	MissionLocation    string  `json:"missionLocation"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	IssuedBy           string  `json:"issuedBy"`
}

// VerifyRequest is the body of a verification. Payload is the raw string scanned from the QR code.
type VerifyRequest struct {
	Payload    string  `json:"payload"`
	VerifiedBy *string `json:"verifiedBy,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		return &RequestError{Message: fmt.Sprintf("invalid request body: %s", err)}
	}
	return nil
}

func (req *CreateAssignmentRequest) toService() (*ports.IssueAssignmentRequest, error) {
	start, err := parseOptionalDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	return &ports.IssueAssignmentRequest{
		Journalist: ports.JournalistRequest{
			NationalID: req.NationalID,
			FullName:   req.FullName,
			Phone:      req.Phone,
			Email:      req.Email,
			PhotoURL:   req.PhotoURL,
		},
		RegistrationNumber: req.RegistrationNumber,
		Organization:       req.Organization,
		Position:           req.Position,
		MissionType:        req.MissionType,
		MissionLocation:    req.MissionLocation,
		StartDate:          start,
		EndDate:            end,
		IssuedBy:           req.IssuedBy,
	}, nil
}

// parseOptionalDate returns the zero date for a blank value, the service reports it as missing
func parseOptionalDate(field, value string) (timeapi.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return timeapi.Date{}, nil
	}
	d, err := timeapi.ParseDate(value)
	if err != nil {
		return timeapi.Date{}, &RequestError{Message: fmt.Sprintf("%s: must be a date in YYYY-MM-DD format", field)}
	}
	return d, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &RequestError{Message: "invalid assignment id"}
	}
	return id, nil
}

// assignmentsFilter reads the query string of GET /v1/assignments:
// query, status, max_results, page and sort.
func assignmentsFilter(r *http.Request) (*ports.AssignmentsFilter, error) {
	q := r.URL.Query()

	var status *domain.AssignmentStatus
	if s := q.Get("status"); s != "" {
		st := domain.AssignmentStatus(s)
		if !st.IsValid() {
			return nil, &RequestError{Message: "status: must be one of upcoming, active or expired"}
		}
		status = &st
	}

	maxResults, err := parseUint(q.Get("max_results"), "max_results")
	if err != nil {
		return nil, err
	}
	page, err := parseUint(q.Get("page"), "page")
	if err != nil {
		return nil, err
	}

	filter := ports.NewAssignmentsFilter(common.NonBlank(common.ToPointer(q.Get("query"))), status, maxResults, page)
	if sort := q.Get("sort"); sort != "" {
		orderBy, err := sqltools.ParseSort(sort, assignmentSortFields)
		if err != nil {
			return nil, &RequestError{Message: "sort: " + err.Error()}
		}
		filter.OrderBy = orderBy
	}
	return filter, nil
}

func parseUint(value, field string) (*uint, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, &RequestError{Message: field + ": must be a positive number"}
	}
	return common.ToPointer(uint(n)), nil
}
