package handler

import (
	"net/http"

	"aquaflow/internal/service"

	"github.com/rs/zerolog"
)

// AreaHandler serves the public service-area directory.
type AreaHandler struct {
	accounts service.AccountService
	logger   zerolog.Logger
}

// NewAreaHandler creates a new area handler.
func NewAreaHandler(accounts service.AccountService, logger zerolog.Logger) *AreaHandler {
	return &AreaHandler{
		accounts: accounts,
		logger:   logger.With().Str("handler", "area").Logger(),
	}
}

// List handles GET /api/v1/areas requests. The directory is readable without
// a session so that registration forms can offer it.
func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.accounts.ListAreas(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}
