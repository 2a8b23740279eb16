package api

import (
	"net/http"

	"github.com/pressid/mission-orders/internal/common"
	"github.com/pressid/mission-orders/internal/core/ports"
)

// Verify checks a scanned QR code. Unknown and expired codes are answered with 200 and success false.
func (s *Server) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req VerifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	outcome, err := s.verifications.Verify(ctx, &ports.VerifyRequest{
		Payload:    req.Payload,
		VerifiedBy: common.NonBlank(req.VerifiedBy),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, verificationResponse(outcome, s.today()))
}

// GetAssignmentVerifications returns the verification log of a mission order, newest first
func (s *Server) GetAssignmentVerifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	logs, err := s.verifications.History(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, verificationLogsResponse(logs))
}
