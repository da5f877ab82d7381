package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"hei-calculator/domain"
	"hei-calculator/input"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps invalid input to 400 with the offending field and anything
// else to 500.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var invalid *domain.InvalidTermsError
	var fieldErr *input.FieldError

	switch {
	case errors.As(err, &invalid):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: invalid.Field})
	case errors.As(err, &fieldErr):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: fieldErr.Field})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, log, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.WithError(err).Error("error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("error writing response")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
