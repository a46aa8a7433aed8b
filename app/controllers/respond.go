package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pressroom/app/repositories"
	"pressroom/app/services"

	"github.com/rs/zerolog"
)

// writeJSON serializes data with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// apiError is the listing/detail error shape: {"error": message}.
func apiError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusError is the interactive-endpoint error shape:
// {"status": "error", "message": message}.
func statusError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

// translate maps a service/repository error to an HTTP status and a
// client-safe message. Anything outside the taxonomy is logged and
// surfaced as a generic 500 with no internal detail.
func translate(logger zerolog.Logger, err error, notFoundMsg, fallbackMsg string) (int, string) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}
	var cerr *services.ConflictError
	if errors.As(err, &cerr) {
		return http.StatusBadRequest, cerr.Message
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return http.StatusNotFound, notFoundMsg
	}
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return http.StatusBadRequest, "duplicate value for a unique field"
	}
	if errors.Is(err, repositories.ErrEmptySlug) {
		return http.StatusBadRequest, "title must contain at least one letter or number"
	}

	logger.Error().Err(err).Msg("unexpected error")
	return http.StatusInternalServerError, fallbackMsg
}

// decodeBody reads a JSON or form request body into a flat string map,
// mirroring the dual JSON/form submission the comment and newsletter
// endpoints accept.
func decodeBody(r *http.Request) (map[string]string, error) {
	data := map[string]string{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			return nil, err
		}
		return data, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for key, values := range r.PostForm {
		if len(values) > 0 {
			data[key] = values[0]
		}
	}
	return data, nil
}
