package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/logger"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError translates the domain error taxonomy into HTTP statuses. Ledger
// inconsistencies surface as an opaque 500; the detail stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeJSON(w, http.StatusPaymentRequired, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrLedgerInconsistency):
		logger.Error("Ledger inconsistency surfaced to API", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "something went wrong, please try again or contact support"})
	default:
		logger.Error("Unhandled error in API", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
