package service

import (
	"context"
	"testing"
	"time"

	"aquaflow/internal/model"
	"aquaflow/internal/store"
	"aquaflow/internal/store/memory"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fixture wires the services over a fresh in-memory store with one vendor
// serving one area, one customer with a default address in it, and one
// inventory item.
type fixture struct {
	store     *store.Store
	accounts  AccountService
	inventory InventoryService
	orders    OrderService
	invoices  InvoiceService
	reports   ReportService

	vendor   *model.User
	customer *model.User
	areaID   uuid.UUID
	address  *model.Address
	item     *model.InventoryItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := zerolog.Nop()

	st, err := memory.Open("", logger)
	require.NoError(t, err)

	f := &fixture{
		store:     st,
		accounts:  NewAccountService(st, logger),
		inventory: NewInventoryService(st, logger),
		orders:    NewOrderService(st, logger),
		invoices:  NewInvoiceService(st, logger),
		reports:   NewReportService(st, logger),
	}

	f.vendor, err = f.accounts.Register(ctx, &model.RegisterRequest{
		UserID:   "bluefalls",
		Password: "secret123",
		Name:     "Blue Falls Water",
		Phone:    "555-0100",
		Type:     model.UserTypeVendor,
		AreaName: "North Hills",
	})
	require.NoError(t, err)
	require.NotNil(t, f.vendor.AreaID)
	f.areaID = *f.vendor.AreaID

	f.customer, err = f.accounts.Register(ctx, &model.RegisterRequest{
		UserID:   "ravi",
		Password: "secret456",
		Name:     "Ravi Kumar",
		Phone:    "555-0101",
		Type:     model.UserTypeCustomer,
		AreaID:   f.areaID.String(),
	})
	require.NoError(t, err)

	f.address, err = f.accounts.CreateAddress(ctx, f.customer.ID, &model.AddressRequest{
		Label:   "Home",
		Street:  "12 Lake View Road",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62704",
		AreaID:  f.areaID.String(),
	})
	require.NoError(t, err)

	f.item, err = f.inventory.CreateItem(ctx, f.vendor.ID, &model.InventoryItemRequest{
		Name:        "20L Can",
		Price:       2.50,
		Stock:       100,
		Description: "Standard 20 litre refill",
	})
	require.NoError(t, err)

	return f
}

// placeOrder places a simple one-line order for the fixture customer.
func (f *fixture) placeOrder(t *testing.T, quantity int) *model.Order {
	t.Helper()
	order, err := f.orders.Place(context.Background(), f.customer.ID, &model.PlaceOrderRequest{
		AddressID:     f.address.ID,
		Items:         []model.CartItem{{ItemID: f.item.ID, Quantity: quantity}},
		DeliveryDate:  time.Now().AddDate(0, 0, 2),
		PreferredTime: "morning",
	})
	require.NoError(t, err)
	return order
}
