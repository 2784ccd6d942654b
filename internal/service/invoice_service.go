package service

import (
	"context"
	"fmt"
	"time"

	"aquaflow/internal/model"
	"aquaflow/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// invoiceService implements InvoiceService.
type invoiceService struct {
	invoices store.InvoiceStore
	orders   store.OrderStore
	logger   zerolog.Logger
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(st *store.Store, logger zerolog.Logger) InvoiceService {
	return &invoiceService{
		invoices: st.Invoices,
		orders:   st.Orders,
		logger:   logger.With().Str("service", "invoice").Logger(),
	}
}

// Generate creates the order's single invoice: amount copied from the frozen
// order total, due 30 days from generation, starting as draft.
func (s *invoiceService) Generate(ctx context.Context, orderID, actingVendorID uuid.UUID) (*model.Invoice, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNotFound
	}
	if order.VendorID != actingVendorID {
		return nil, model.ErrForbidden
	}
	if order.Status == model.StatusCancelled {
		return nil, model.ErrOrderCancelled
	}
	if order.InvoiceID != nil {
		return nil, model.ErrInvoiceExists
	}

	existing, err := s.invoices.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invoice: %w", err)
	}
	if existing != nil {
		return nil, model.ErrInvoiceExists
	}

	now := time.Now()
	inv := &model.Invoice{
		ID:            uuid.New(),
		OrderID:       orderID,
		Amount:        order.Total,
		GeneratedDate: now,
		DueDate:       now.AddDate(0, 0, model.InvoiceDueDays),
		Status:        model.InvoiceDraft,
	}

	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.orders.SetInvoiceID(ctx, orderID, inv.ID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("invoice_id", inv.ID.String()).
		Str("order_id", orderID.String()).
		Float64("amount", inv.Amount).
		Msg("invoice generated")

	return inv, nil
}

// UpdateStatus moves the invoice among draft, sent and paid with no ordering
// constraint.
func (s *invoiceService) UpdateStatus(ctx context.Context, invoiceID uuid.UUID, status model.InvoiceStatus, actingVendorID uuid.UUID) (*model.Invoice, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if inv == nil {
		return nil, model.ErrNotFound
	}

	order, err := s.orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.VendorID != actingVendorID {
		return nil, model.ErrForbidden
	}

	if err := s.invoices.UpdateStatus(ctx, invoiceID, status); err != nil {
		return nil, err
	}

	inv.Status = status
	return inv, nil
}

func (s *invoiceService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Invoice, error) {
	invoices, err := s.invoices.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}
