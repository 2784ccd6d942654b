package service

import (
	"context"
	"testing"
	"time"

	"aquaflow/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 4)

	inv, err := f.invoices.Generate(ctx, order.ID, f.vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, inv.OrderID)
	assert.InDelta(t, order.Total, inv.Amount, 0.0001)
	assert.Equal(t, model.InvoiceDraft, inv.Status)
	assert.WithinDuration(t,
		inv.GeneratedDate.AddDate(0, 0, model.InvoiceDueDays),
		inv.DueDate, time.Second)

	got, err := f.orders.Get(ctx, order.ID, f.vendor)
	require.NoError(t, err)
	require.NotNil(t, got.InvoiceID)
	assert.Equal(t, inv.ID, *got.InvoiceID)
}

func TestGenerateInvoiceOncePerOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)
	_, err := f.invoices.Generate(ctx, order.ID, f.vendor.ID)
	require.NoError(t, err)

	_, err = f.invoices.Generate(ctx, order.ID, f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrInvoiceExists)
}

func TestGenerateInvoiceBlockedForCancelledOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)
	_, err := f.orders.SetStatus(ctx, order.ID, model.StatusCancelled, f.vendor.ID)
	require.NoError(t, err)

	_, err = f.invoices.Generate(ctx, order.ID, f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrOrderCancelled)
}

func TestGenerateInvoiceOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)

	_, err := f.invoices.Generate(ctx, order.ID, uuid.New())
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = f.invoices.Generate(ctx, uuid.New(), f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestInvoiceAmountFrozenAfterGeneration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 2)
	inv, err := f.invoices.Generate(ctx, order.ID, f.vendor.ID)
	require.NoError(t, err)

	_, err = f.inventory.UpdateItem(ctx, f.vendor.ID, f.item.ID, &model.InventoryItemRequest{
		Name: "20L Can", Price: 99, Stock: 100,
	})
	require.NoError(t, err)

	invoices, err := f.invoices.ListByVendor(ctx, f.vendor.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, inv.ID, invoices[0].ID)
	assert.InDelta(t, 5.0, invoices[0].Amount, 0.0001)
}

func TestInvoiceStatusMovesFreely(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)
	inv, err := f.invoices.Generate(ctx, order.ID, f.vendor.ID)
	require.NoError(t, err)

	for _, status := range []model.InvoiceStatus{
		model.InvoicePaid,
		model.InvoiceDraft,
		model.InvoiceSent,
	} {
		updated, err := f.invoices.UpdateStatus(ctx, inv.ID, status, f.vendor.ID)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = f.invoices.UpdateStatus(ctx, inv.ID, "void", f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = f.invoices.UpdateStatus(ctx, inv.ID, model.InvoicePaid, uuid.New())
	assert.ErrorIs(t, err, model.ErrForbidden)
}
