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

func TestPlaceOrderSnapshotsCartAndAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 3)

	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, f.vendor.ID, order.VendorID)
	assert.Equal(t, "Blue Falls Water", order.VendorName)
	assert.Equal(t, "Ravi Kumar", order.CustomerName)
	assert.Equal(t, f.areaID, order.AreaID)
	assert.Equal(t, "12 Lake View Road", order.Address.Street)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "20L Can", order.Items[0].Name)
	assert.InDelta(t, 7.50, order.Total, 0.0001)

	// A later price change must not alter the placed order.
	_, err := f.inventory.UpdateItem(ctx, f.vendor.ID, f.item.ID, &model.InventoryItemRequest{
		Name:  "20L Can",
		Price: 9.99,
		Stock: 100,
	})
	require.NoError(t, err)

	got, err := f.orders.Get(ctx, order.ID, f.customer)
	require.NoError(t, err)
	assert.InDelta(t, 2.50, got.Items[0].Price, 0.0001)
	assert.InDelta(t, 7.50, got.Total, 0.0001)
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orders.Place(ctx, f.customer.ID, &model.PlaceOrderRequest{
		AddressID:     f.address.ID,
		DeliveryDate:  time.Now().AddDate(0, 0, 1),
		PreferredTime: "morning",
	})
	assert.ErrorIs(t, err, model.ErrEmptyCart)

	_, err = f.orders.Place(ctx, f.customer.ID, &model.PlaceOrderRequest{
		AddressID:    f.address.ID,
		Items:        []model.CartItem{{ItemID: f.item.ID, Quantity: 1}},
		DeliveryDate: time.Now().AddDate(0, 0, 1),
	})
	assert.ErrorIs(t, err, model.ErrMissingTime)

	_, err = f.orders.Place(ctx, f.customer.ID, &model.PlaceOrderRequest{
		AddressID:     f.address.ID,
		Items:         []model.CartItem{{ItemID: f.item.ID, Quantity: 0}},
		DeliveryDate:  time.Now().AddDate(0, 0, 1),
		PreferredTime: "morning",
	})
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)

	_, err = f.orders.Place(ctx, f.customer.ID, &model.PlaceOrderRequest{
		AddressID:     f.address.ID,
		Items:         []model.CartItem{{ItemID: uuid.New(), Quantity: 1}},
		DeliveryDate:  time.Now().AddDate(0, 0, 1),
		PreferredTime: "morning",
	})
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeValidation, model.ErrorCode(err))
}

func TestPlaceOrderForeignAddressForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.accounts.Register(ctx, &model.RegisterRequest{
		UserID:   "meera",
		Password: "secret",
		Name:     "Meera Patel",
		Type:     model.UserTypeCustomer,
		AreaID:   f.areaID.String(),
	})
	require.NoError(t, err)

	_, err = f.orders.Place(ctx, other.ID, &model.PlaceOrderRequest{
		AddressID:     f.address.ID,
		Items:         []model.CartItem{{ItemID: f.item.ID, Quantity: 1}},
		DeliveryDate:  time.Now().AddDate(0, 0, 1),
		PreferredTime: "evening",
	})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestSetStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 2)

	for _, next := range []model.OrderStatus{
		model.StatusAcknowledged,
		model.StatusConfirmed,
		model.StatusInTransit,
		model.StatusDelivered,
	} {
		updated, err := f.orders.SetStatus(ctx, order.ID, next, f.vendor.ID)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	// Delivered is terminal.
	_, err := f.orders.SetStatus(ctx, order.ID, model.StatusPending, f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrOrderFinal)
}

func TestSetStatusCancelOnlyFromPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)
	_, err := f.orders.SetStatus(ctx, order.ID, model.StatusAcknowledged, f.vendor.ID)
	require.NoError(t, err)

	_, err = f.orders.SetStatus(ctx, order.ID, model.StatusCancelled, f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrCancelNotPending)

	second := f.placeOrder(t, 1)
	updated, err := f.orders.SetStatus(ctx, second.ID, model.StatusCancelled, f.vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, updated.Status)

	_, err = f.orders.SetStatus(ctx, second.ID, model.StatusConfirmed, f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrOrderFinal)
}

func TestSetStatusGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)

	_, err := f.orders.SetStatus(ctx, order.ID, "shipped", f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = f.orders.SetStatus(ctx, order.ID, model.StatusConfirmed, uuid.New())
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = f.orders.SetStatus(ctx, uuid.New(), model.StatusConfirmed, f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeliveryDecrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 30)
	_, err := f.orders.SetStatus(ctx, order.ID, model.StatusDelivered, f.vendor.ID)
	require.NoError(t, err)

	items, err := f.inventory.ListByVendor(ctx, f.vendor.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 70, items[0].Stock)
}

func TestDeliveryDecrementClampsAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 150)
	_, err := f.orders.SetStatus(ctx, order.ID, model.StatusDelivered, f.vendor.ID)
	require.NoError(t, err)

	items, err := f.inventory.ListByVendor(ctx, f.vendor.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Stock)
}

func TestDeliveryStandsWhenItemRemoved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 5)
	require.NoError(t, f.inventory.DeleteItem(ctx, f.vendor.ID, f.item.ID))

	updated, err := f.orders.SetStatus(ctx, order.ID, model.StatusDelivered, f.vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, updated.Status)
}

func TestListForUserScopesAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.placeOrder(t, 1)
	second := f.placeOrder(t, 2)

	vendorOrders, err := f.orders.ListForUser(ctx, f.vendor, 0, 0)
	require.NoError(t, err)
	assert.Len(t, vendorOrders, 2)

	customerOrders, err := f.orders.ListForUser(ctx, f.customer, 0, 0)
	require.NoError(t, err)
	require.Len(t, customerOrders, 2)
	// Newest first.
	assert.Equal(t, second.ID, customerOrders[0].ID)
	assert.Equal(t, first.ID, customerOrders[1].ID)

	now := time.Now()
	filtered, err := f.orders.ListForUser(ctx, f.customer, now.Year(), int(now.Month()))
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	empty, err := f.orders.ListForUser(ctx, f.customer, now.Year()-1, int(now.Month()))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetOrderVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)

	_, err := f.orders.Get(ctx, order.ID, f.customer)
	require.NoError(t, err)
	_, err = f.orders.Get(ctx, order.ID, f.vendor)
	require.NoError(t, err)

	stranger := &model.User{ID: uuid.New(), Type: model.UserTypeCustomer}
	_, err = f.orders.Get(ctx, order.ID, stranger)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestAppendMessageThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)

	msg, err := f.orders.AppendMessage(ctx, order.ID, f.customer, "  Please ring the bell. ")
	require.NoError(t, err)
	assert.Equal(t, model.SenderCustomer, msg.Sender)
	assert.Equal(t, "Please ring the bell.", msg.Message)
	assert.Equal(t, "Ravi Kumar", msg.SenderName)

	reply, err := f.orders.AppendMessage(ctx, order.ID, f.vendor, "Will do.")
	require.NoError(t, err)
	assert.Equal(t, model.SenderVendor, reply.Sender)

	got, err := f.orders.Get(ctx, order.ID, f.customer)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, msg.ID, got.Messages[0].ID)
	assert.Equal(t, reply.ID, got.Messages[1].ID)

	_, err = f.orders.AppendMessage(ctx, order.ID, f.customer, "   ")
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeValidation, model.ErrorCode(err))
}

// Messaging stays open in terminal states.
func TestAppendMessageAfterDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)
	_, err := f.orders.SetStatus(ctx, order.ID, model.StatusDelivered, f.vendor.ID)
	require.NoError(t, err)

	_, err = f.orders.AppendMessage(ctx, order.ID, f.customer, "Thanks!")
	assert.NoError(t, err)
}
