package handler

import (
	"encoding/json"
	"net/http"

	"aquaflow/internal/middleware"
	"aquaflow/internal/model"
	"aquaflow/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles the order lifecycle endpoints.
type OrderHandler struct {
	orders   service.OrderService
	invoices service.InvoiceService
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, invoices service.InvoiceService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		invoices: invoices,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/v1/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeCustomer, h.logger)
	if !ok {
		return
	}

	var req model.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	order, err := h.orders.Place(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/v1/orders requests. Vendors see orders routed to
// them; customers see their own, optionally filtered by ?year=&month= on the
// order date.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	year, err := queryInt(r, "year", 0)
	if err != nil {
		writeBadRequest(w, "invalid year")
		return
	}
	month, err := queryInt(r, "month", 0)
	if err != nil {
		writeBadRequest(w, "invalid month")
		return
	}

	orders, svcErr := h.orders.ListForUser(r.Context(), user, year, month)
	if svcErr != nil {
		writeError(w, svcErr, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/v1/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), orderID, user)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/v1/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	order, err := h.orders.SetStatus(r.Context(), orderID, req.Status, user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// PostMessage handles POST /api/v1/orders/{id}/messages requests.
func (h *OrderHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	msg, err := h.orders.AppendMessage(r.Context(), orderID, user, req.Message)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// GenerateInvoice handles POST /api/v1/orders/{id}/invoice requests.
func (h *OrderHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	inv, err := h.invoices.Generate(r.Context(), orderID, user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}
