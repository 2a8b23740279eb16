package api

import (
	"net/http"

	"github.com/pressid/mission-orders/internal/log"
)

// CreateAssignment issues a mission order
func (s *Server) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateAssignmentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	issueReq, err := req.toService()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	assignment, err := s.assignments.Issue(ctx, issueReq)
	if err != nil {
		log.Warn(ctx, "issuing mission order", "err", err)
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, assignmentResponse(assignment, s.today()))
}

// GetAssignments returns the mission orders matching the query string filters, newest first
func (s *Server) GetAssignments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := assignmentsFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	assignments, total, err := s.assignments.GetAll(ctx, filter)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, assignmentsPaginatedResponse(assignments, filter.Pagination, total, s.today()))
}

// GetAssignment returns one mission order with its journalist
func (s *Server) GetAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, assignmentResponse(assignment, s.today()))
}

// GetAssignmentDocument returns the printable fields of a mission order and the QR code string
func (s *Server) GetAssignmentDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	doc, err := s.assignments.Document(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, documentResponse(doc))
}

// GetStats returns the mission order counts and the latest issued ones
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dashboard, err := s.assignments.Dashboard(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, statsResponse(dashboard, s.today()))
}
