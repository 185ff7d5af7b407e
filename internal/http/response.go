package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"ledger/internal/core"
	"ledger/internal/log"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	RequestID        string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, ErrorResponse{Error: code, ErrorDescription: description})
}

// writeServiceError maps domain errors onto status codes: invalid entries are
// 422, malformed months or ranges 400, missing entries 404, anything else 500.
// A 500 carries only the request id so the failure can be found in the logs.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidCategory):
		writeJSONError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, errMalformed),
		errors.Is(err, core.ErrInvalidYearMonth),
		errors.Is(err, core.ErrInvalidRange):
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.NewFields().WithOperation(op).WithError(err).ToSlice()...)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "internal error",
			RequestID:        log.RequestID(r.Context()),
		})
	}
}
