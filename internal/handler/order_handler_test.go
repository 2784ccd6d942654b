package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aquaflow/internal/middleware"
	"aquaflow/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) Place(ctx context.Context, customerID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *mockOrderService) Get(ctx context.Context, orderID uuid.UUID, actor *model.User) (*model.Order, error) {
	args := m.Called(ctx, orderID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *mockOrderService) ListForUser(ctx context.Context, actor *model.User, year int, month int) ([]model.Order, error) {
	args := m.Called(ctx, actor, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *mockOrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, actingVendorID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, orderID, status, actingVendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *mockOrderService) AppendMessage(ctx context.Context, orderID uuid.UUID, actor *model.User, text string) (*model.OrderMessage, error) {
	args := m.Called(ctx, orderID, actor, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderMessage), args.Error(1)
}

type mockInvoiceService struct {
	mock.Mock
}

func (m *mockInvoiceService) Generate(ctx context.Context, orderID, actingVendorID uuid.UUID) (*model.Invoice, error) {
	args := m.Called(ctx, orderID, actingVendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *mockInvoiceService) UpdateStatus(ctx context.Context, invoiceID uuid.UUID, status model.InvoiceStatus, actingVendorID uuid.UUID) (*model.Invoice, error) {
	args := m.Called(ctx, invoiceID, status, actingVendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *mockInvoiceService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Invoice, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invoice), args.Error(1)
}

// mountOrderRoutes mirrors the order routes so URL parameters resolve.
func mountOrderRoutes(h *OrderHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/orders", h.Create)
	r.Get("/orders", h.List)
	r.Get("/orders/{id}", h.GetByID)
	r.Patch("/orders/{id}/status", h.UpdateStatus)
	r.Post("/orders/{id}/messages", h.PostMessage)
	r.Post("/orders/{id}/invoice", h.GenerateInvoice)
	return r
}

func asUser(req *http.Request, user *model.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func TestOrderCreate(t *testing.T) {
	orders := new(mockOrderService)
	h := NewOrderHandler(orders, new(mockInvoiceService), zerolog.Nop())
	r := mountOrderRoutes(h)

	customer := &model.User{ID: uuid.New(), Type: model.UserTypeCustomer}
	placed := &model.Order{ID: uuid.New(), CustomerID: customer.ID, Status: model.StatusPending}
	orders.On("Place", mock.Anything, customer.ID, mock.AnythingOfType("*model.PlaceOrderRequest")).
		Return(placed, nil)

	body, _ := json.Marshal(model.PlaceOrderRequest{
		AddressID:     uuid.New(),
		Items:         []model.CartItem{{ItemID: uuid.New(), Quantity: 2}},
		PreferredTime: "morning",
	})
	req := asUser(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body)), customer)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, placed.ID, got.ID)
	orders.AssertExpectations(t)
}

func TestOrderCreateRejectsVendor(t *testing.T) {
	orders := new(mockOrderService)
	h := NewOrderHandler(orders, new(mockInvoiceService), zerolog.Nop())
	r := mountOrderRoutes(h)

	vendor := &model.User{ID: uuid.New(), Type: model.UserTypeVendor}
	req := asUser(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{}`))), vendor)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	orders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderCreateInvalidBody(t *testing.T) {
	orders := new(mockOrderService)
	h := NewOrderHandler(orders, new(mockInvoiceService), zerolog.Nop())
	r := mountOrderRoutes(h)

	customer := &model.User{ID: uuid.New(), Type: model.UserTypeCustomer}
	req := asUser(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{not json`))), customer)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderListPassesFilter(t *testing.T) {
	orders := new(mockOrderService)
	h := NewOrderHandler(orders, new(mockInvoiceService), zerolog.Nop())
	r := mountOrderRoutes(h)

	customer := &model.User{ID: uuid.New(), Type: model.UserTypeCustomer}
	orders.On("ListForUser", mock.Anything, customer, 2026, 3).
		Return([]model.Order{}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/orders?year=2026&month=3", nil), customer)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	orders.AssertExpectations(t)
}

func TestOrderUpdateStatusErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", model.ErrNotFound, http.StatusNotFound},
		{"forbidden", model.ErrForbidden, http.StatusForbidden},
		{"terminal", model.ErrOrderFinal, http.StatusConflict},
		{"cancel not pending", model.ErrCancelNotPending, http.StatusConflict},
		{"bad status", model.ErrInvalidStatus, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := new(mockOrderService)
			h := NewOrderHandler(orders, new(mockInvoiceService), zerolog.Nop())
			r := mountOrderRoutes(h)

			vendor := &model.User{ID: uuid.New(), Type: model.UserTypeVendor}
			orderID := uuid.New()
			orders.On("SetStatus", mock.Anything, orderID, model.StatusDelivered, vendor.ID).
				Return(nil, tc.err)

			body := []byte(`{"status":"delivered"}`)
			req := asUser(httptest.NewRequest(http.MethodPatch, "/orders/"+orderID.String()+"/status", bytes.NewReader(body)), vendor)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)

			var resp model.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, model.ErrorCode(tc.err), resp.Error)
		})
	}
}

func TestOrderUpdateStatusBadID(t *testing.T) {
	orders := new(mockOrderService)
	h := NewOrderHandler(orders, new(mockInvoiceService), zerolog.Nop())
	r := mountOrderRoutes(h)

	vendor := &model.User{ID: uuid.New(), Type: model.UserTypeVendor}
	req := asUser(httptest.NewRequest(http.MethodPatch, "/orders/not-a-uuid/status", bytes.NewReader([]byte(`{"status":"confirmed"}`))), vendor)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	orders.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderPostMessage(t *testing.T) {
	orders := new(mockOrderService)
	h := NewOrderHandler(orders, new(mockInvoiceService), zerolog.Nop())
	r := mountOrderRoutes(h)

	customer := &model.User{ID: uuid.New(), Type: model.UserTypeCustomer}
	orderID := uuid.New()
	msg := &model.OrderMessage{ID: uuid.New(), OrderID: orderID, Sender: model.SenderCustomer, Message: "On my way out, leave at door."}
	orders.On("AppendMessage", mock.Anything, orderID, customer, "On my way out, leave at door.").
		Return(msg, nil)

	body := []byte(`{"message":"On my way out, leave at door."}`)
	req := asUser(httptest.NewRequest(http.MethodPost, "/orders/"+orderID.String()+"/messages", bytes.NewReader(body)), customer)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	orders.AssertExpectations(t)
}

func TestOrderGenerateInvoice(t *testing.T) {
	orders := new(mockOrderService)
	invoices := new(mockInvoiceService)
	h := NewOrderHandler(orders, invoices, zerolog.Nop())
	r := mountOrderRoutes(h)

	vendor := &model.User{ID: uuid.New(), Type: model.UserTypeVendor}
	orderID := uuid.New()
	inv := &model.Invoice{ID: uuid.New(), OrderID: orderID, Amount: 12.5, Status: model.InvoiceDraft}
	invoices.On("Generate", mock.Anything, orderID, vendor.ID).Return(inv, nil)

	req := asUser(httptest.NewRequest(http.MethodPost, "/orders/"+orderID.String()+"/invoice", nil), vendor)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Invoice
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, inv.ID, got.ID)
	invoices.AssertExpectations(t)
}

func TestOrderGenerateInvoiceConflict(t *testing.T) {
	orders := new(mockOrderService)
	invoices := new(mockInvoiceService)
	h := NewOrderHandler(orders, invoices, zerolog.Nop())
	r := mountOrderRoutes(h)

	vendor := &model.User{ID: uuid.New(), Type: model.UserTypeVendor}
	orderID := uuid.New()
	invoices.On("Generate", mock.Anything, orderID, vendor.ID).Return(nil, model.ErrInvoiceExists)

	req := asUser(httptest.NewRequest(http.MethodPost, "/orders/"+orderID.String()+"/invoice", nil), vendor)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
