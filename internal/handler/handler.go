package handler

import (
	"encoding/json"
	"net/http"

	"aquaflow/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}

// statusForCode maps domain error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON, model.ErrCodePartialFailure:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes the error response for a service failure. Domain errors
// surface their code and message; anything else becomes an opaque 500.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	code := model.ErrorCode(err)
	status := statusForCode(code)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("handler error")
		message = "internal server error"
	} else {
		logger.Debug().Str("code", code).Str("error", message).Msg("request rejected")
	}

	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeBadRequest writes a request-shape error (malformed JSON or URL param).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:   model.ErrCodeInvalidJSON,
		Message: message,
	})
}
