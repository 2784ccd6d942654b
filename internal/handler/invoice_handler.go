package handler

import (
	"encoding/json"
	"net/http"

	"aquaflow/internal/model"
	"aquaflow/internal/service"

	"github.com/rs/zerolog"
)

// InvoiceHandler handles the vendor invoice endpoints.
type InvoiceHandler struct {
	invoices service.InvoiceService
	logger   zerolog.Logger
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(invoices service.InvoiceService, logger zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
		logger:   logger.With().Str("handler", "invoice").Logger(),
	}
}

// List handles GET /api/v1/invoices requests.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}

	invoices, err := h.invoices.ListByVendor(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// UpdateStatus handles PATCH /api/v1/invoices/{id}/status requests.
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}
	invoiceID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.InvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	inv, err := h.invoices.UpdateStatus(r.Context(), invoiceID, req.Status, user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
