package handler

import (
	"encoding/json"
	"net/http"

	"aquaflow/internal/model"
	"aquaflow/internal/service"

	"github.com/rs/zerolog"
)

// AddressHandler handles the customer address book.
type AddressHandler struct {
	accounts service.AccountService
	logger   zerolog.Logger
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(accounts service.AccountService, logger zerolog.Logger) *AddressHandler {
	return &AddressHandler{
		accounts: accounts,
		logger:   logger.With().Str("handler", "address").Logger(),
	}
}

// List handles GET /api/v1/addresses requests.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeCustomer, h.logger)
	if !ok {
		return
	}

	addresses, err := h.accounts.ListAddresses(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

// Create handles POST /api/v1/addresses requests.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeCustomer, h.logger)
	if !ok {
		return
	}

	var req model.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	addr, err := h.accounts.CreateAddress(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, addr)
}

// Update handles PUT /api/v1/addresses/{id} requests.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeCustomer, h.logger)
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	addr, err := h.accounts.UpdateAddress(r.Context(), user.ID, addressID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

// Delete handles DELETE /api/v1/addresses/{id} requests.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeCustomer, h.logger)
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.accounts.DeleteAddress(r.Context(), user.ID, addressID); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDefault handles PUT /api/v1/addresses/{id}/default requests.
func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeCustomer, h.logger)
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.accounts.SetDefaultAddress(r.Context(), user.ID, addressID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	addresses, err := h.accounts.ListAddresses(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}
