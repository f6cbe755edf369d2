package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"meetx_server/services"
	"meetx_server/store"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the service error taxonomy onto HTTP statuses: invalid
// arguments are the caller's fault, store unavailability is retryable.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		http.Error(w, `{"error": "invalid request"}`, http.StatusBadRequest)
	case errors.Is(err, services.ErrNotSignedIn):
		http.Error(w, `{"error": "not signed in"}`, http.StatusUnauthorized)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
	case errors.Is(err, store.ErrUnavailable):
		http.Error(w, `{"error": "store unavailable, retry"}`, http.StatusServiceUnavailable)
	default:
		http.Error(w, `{"error": "internal error"}`, http.StatusInternalServerError)
	}
}
