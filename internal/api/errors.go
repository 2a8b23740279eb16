package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pressid/mission-orders/internal/core/services"
	"github.com/pressid/mission-orders/internal/log"
)

// GenericErrorMessage is the body of every error response
type GenericErrorMessage struct {
	Message string `json:"message"`
}

// RequestError is returned when a request cannot be decoded
type RequestError struct {
	Message string
}

// Error satisfies error interface for RequestError
func (e *RequestError) Error() string {
	return e.Message
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error(ctx, "writing response", "err", err)
	}
}

// writeError maps service errors to http responses. Unknown errors are logged and hidden.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		reqErr *RequestError
		valErr *services.ValidationError
	)
	switch {
	case errors.As(err, &reqErr):
		writeJSON(ctx, w, http.StatusBadRequest, GenericErrorMessage{Message: reqErr.Message})
	case errors.As(err, &valErr):
		writeJSON(ctx, w, http.StatusBadRequest, GenericErrorMessage{Message: valErr.Error()})
	case errors.Is(err, services.ErrInvalidValidityWindow):
		writeJSON(ctx, w, http.StatusBadRequest, GenericErrorMessage{Message: err.Error()})
	case errors.Is(err, services.ErrAssignmentNotFound):
		writeJSON(ctx, w, http.StatusNotFound, GenericErrorMessage{Message: "assignment not found"})
	case errors.Is(err, services.ErrVerificationUnavailable):
		log.Error(ctx, "verification failed", "err", err)
		writeJSON(ctx, w, http.StatusInternalServerError, GenericErrorMessage{Message: "verification is not available, try again later"})
	default:
		log.Error(ctx, "request failed", "err", err)
		writeJSON(ctx, w, http.StatusInternalServerError, GenericErrorMessage{Message: "internal error"})
	}
}
