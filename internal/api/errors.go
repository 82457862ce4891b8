package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"shareit/internal/domain"
	"shareit/internal/paging"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps a service error onto an HTTP status. Unknown errors
// become a 500 without leaking internals.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrOwnerConflict):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrUnsupportedFilter),
		errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrNoPriorBooking),
		errors.Is(err, domain.ErrEmptyText),
		errors.Is(err, paging.ErrInvalidPage):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
