package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fincast/fincast/internal/adapter/http/dto"
	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/engine"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain and engine errors to HTTP status codes.
func mapDomainError(err error) int {
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, engine.ErrMissingStartDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrDuplicateAccount),
		errors.Is(err, domain.ErrUnknownAccountType),
		errors.Is(err, domain.ErrNegativeLimit),
		errors.Is(err, domain.ErrUnknownFrequency),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidRecurrenceDay),
		errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, domain.ErrInvalidTargetMonth),
		errors.Is(err, domain.ErrMissingOneTimeDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
