package handler

import (
	"net/http"
	"strconv"

	"aquaflow/internal/middleware"
	"aquaflow/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// pathID parses a UUID URL parameter, writing a 400 response itself when the
// value is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeBadRequest(w, "invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// requireRole returns the authenticated account when it has the given type,
// writing a 403 response otherwise.
func requireRole(w http.ResponseWriter, r *http.Request, t model.UserType, logger zerolog.Logger) (*model.User, bool) {
	user := middleware.UserFromContext(r.Context())
	if user == nil || user.Type != t {
		writeError(w, model.ErrForbidden, logger)
		return nil, false
	}
	return user, true
}

// queryInt parses an integer query parameter, returning fallback when absent.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
