package handler

import (
	"encoding/json"
	"net/http"

	"aquaflow/internal/model"
	"aquaflow/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InventoryHandler handles the vendor stock ledger and the customer-facing
// catalog view of it.
type InventoryHandler struct {
	inventory service.InventoryService
	logger    zerolog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventory service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		logger:    logger.With().Str("handler", "inventory").Logger(),
	}
}

// List handles GET /api/v1/inventory requests.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}

	items, err := h.inventory.ListByVendor(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/v1/inventory requests.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}

	var req model.InventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	item, err := h.inventory.CreateItem(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/v1/inventory/{id} requests.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.InventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	item, err := h.inventory.UpdateItem(r.Context(), user.ID, itemID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/inventory/{id} requests.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.inventory.DeleteItem(r.Context(), user.ID, itemID); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LowStock handles GET /api/v1/inventory/low-stock requests.
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}

	items, err := h.inventory.LowStock(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Catalog handles GET /api/v1/catalog?areaId= requests: the items a customer
// can order in one area.
func (h *InventoryHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	areaID, err := uuid.Parse(r.URL.Query().Get("areaId"))
	if err != nil {
		writeBadRequest(w, "areaId query parameter is required")
		return
	}

	items, svcErr := h.inventory.Catalog(r.Context(), areaID)
	if svcErr != nil {
		writeError(w, svcErr, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
