package memory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"aquaflow/internal/model"
	"aquaflow/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, path string) *store.Store {
	t.Helper()
	st, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	return st
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	st := open(t, path)

	vendorID := uuid.New()
	require.NoError(t, st.Users.Create(ctx, &model.User{
		ID:           vendorID,
		UserID:       "bluefalls",
		Name:         "Blue Falls Water",
		Type:         model.UserTypeVendor,
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMye",
	}))
	require.NoError(t, st.Areas.Create(ctx, &model.ServiceArea{
		ID:       uuid.New(),
		Name:     "North Hills",
		VendorID: vendorID,
	}))

	order := &model.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		VendorID:   vendorID,
		Status:     model.StatusPending,
		OrderDate:  time.Now(),
		Items:      []model.OrderItem{{ID: uuid.New(), Name: "20L Can", Price: 2.5, Quantity: 2}},
	}
	require.NoError(t, st.Orders.Create(ctx, order))

	// A second open against the same file must see everything.
	reopened := open(t, path)

	user, err := reopened.Users.GetByUserID(ctx, "bluefalls")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, vendorID, user.ID)
	// The hash is hidden from API responses but must survive a reload, or
	// every persisted account would be unable to log in after a restart.
	assert.Equal(t, "$2a$10$N9qo8uLOickgx2ZMRZoMye", user.PasswordHash)

	got, err := reopened.Orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "20L Can", got.Items[0].Name)
}

func TestOpenWithoutPathKeepsStateInProcess(t *testing.T) {
	ctx := context.Background()
	st := open(t, "")

	require.NoError(t, st.Users.Create(ctx, &model.User{
		ID: uuid.New(), UserID: "ravi", Type: model.UserTypeCustomer,
	}))

	fresh := open(t, "")
	user, err := fresh.Users.GetByUserID(ctx, "ravi")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestMissingLookupsReturnNil(t *testing.T) {
	ctx := context.Background()
	st := open(t, "")

	user, err := st.Users.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, user)

	area, err := st.Areas.GetByName(ctx, "nowhere")
	require.NoError(t, err)
	assert.Nil(t, area)

	order, err := st.Orders.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestAreaNameUniqueIgnoresCase(t *testing.T) {
	ctx := context.Background()
	st := open(t, "")

	require.NoError(t, st.Areas.Create(ctx, &model.ServiceArea{
		ID: uuid.New(), Name: "North Hills", VendorID: uuid.New(),
	}))

	err := st.Areas.Create(ctx, &model.ServiceArea{
		ID: uuid.New(), Name: "NORTH HILLS", VendorID: uuid.New(),
	})
	assert.ErrorIs(t, err, model.ErrAreaTaken)

	found, err := st.Areas.GetByName(ctx, "north hills")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "North Hills", found.Name)
}

func TestSetDefaultFlipsExactlyOne(t *testing.T) {
	ctx := context.Background()
	st := open(t, "")
	userID := uuid.New()

	first := &model.Address{ID: uuid.New(), UserID: userID, IsDefault: true, CreatedAt: time.Now()}
	second := &model.Address{ID: uuid.New(), UserID: userID, CreatedAt: time.Now().Add(time.Second)}
	require.NoError(t, st.Addresses.Create(ctx, first))
	require.NoError(t, st.Addresses.Create(ctx, second))

	require.NoError(t, st.Addresses.SetDefault(ctx, userID, second.ID))

	addrs, err := st.Addresses.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.Equal(t, second.ID, addrs[0].ID)
	assert.True(t, addrs[0].IsDefault)
	assert.False(t, addrs[1].IsDefault)

	// A foreign address never becomes another user's default.
	err = st.Addresses.SetDefault(ctx, uuid.New(), second.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDecrementClampsAndReportsMissing(t *testing.T) {
	ctx := context.Background()
	st := open(t, "")
	vendorID := uuid.New()

	item := &model.InventoryItem{ID: uuid.New(), VendorID: vendorID, Name: "20L Can", Stock: 10}
	require.NoError(t, st.Inventory.Create(ctx, item))

	ghost := uuid.New()
	missing, err := st.Inventory.Decrement(ctx, vendorID, []model.DecrementLine{
		{ItemID: item.ID, Quantity: 25},
		{ItemID: ghost, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ghost}, missing)

	got, err := st.Inventory.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestInvoiceUniquePerOrder(t *testing.T) {
	ctx := context.Background()
	st := open(t, "")
	orderID := uuid.New()

	require.NoError(t, st.Invoices.Create(ctx, &model.Invoice{
		ID: uuid.New(), OrderID: orderID, Amount: 5, Status: model.InvoiceDraft,
	}))

	err := st.Invoices.Create(ctx, &model.Invoice{
		ID: uuid.New(), OrderID: orderID, Amount: 5, Status: model.InvoiceDraft,
	})
	assert.ErrorIs(t, err, model.ErrInvoiceExists)
}

func TestOrderCopiesAreDetached(t *testing.T) {
	ctx := context.Background()
	st := open(t, "")

	order := &model.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		VendorID:   uuid.New(),
		Status:     model.StatusPending,
		OrderDate:  time.Now(),
		Items:      []model.OrderItem{{ID: uuid.New(), Name: "20L Can", Price: 2.5, Quantity: 1}},
	}
	require.NoError(t, st.Orders.Create(ctx, order))

	got, err := st.Orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	got.Items[0].Name = "tampered"

	again, err := st.Orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "20L Can", again.Items[0].Name)
}
