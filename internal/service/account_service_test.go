package service

import (
	"context"
	"testing"

	"aquaflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterVendorClaimsArea(t *testing.T) {
	f := newFixture(t)

	areas, err := f.accounts.ListAreas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "North Hills", areas[0].Name)
	assert.Equal(t, f.vendor.ID, areas[0].VendorID)
	assert.Equal(t, "Blue Falls Water", areas[0].VendorName)
}

func TestRegisterVendorAreaNameConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Same name, different casing: the claim must still be rejected and the
	// second vendor must not end up registered.
	_, err := f.accounts.Register(ctx, &model.RegisterRequest{
		UserID:   "rival",
		Password: "secret789",
		Name:     "Rival Water Co",
		Type:     model.UserTypeVendor,
		AreaName: "north hills",
	})
	require.ErrorIs(t, err, model.ErrAreaTaken)

	_, err = f.accounts.Authenticate(ctx, "rival", "secret789")
	assert.ErrorIs(t, err, model.ErrInvalidCredential)
}

func TestRegisterDuplicateUserID(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.Register(context.Background(), &model.RegisterRequest{
		UserID:   "ravi",
		Password: "other",
		Name:     "Another Ravi",
		Type:     model.UserTypeCustomer,
		AreaID:   f.areaID.String(),
	})
	assert.ErrorIs(t, err, model.ErrDuplicateUserID)
}

func TestRegisterCustomerRequiresExistingArea(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Register(ctx, &model.RegisterRequest{
		UserID:   "nobody",
		Password: "secret",
		Name:     "No Area",
		Type:     model.UserTypeCustomer,
	})
	assert.ErrorIs(t, err, model.ErrAreaRequired)

	_, err = f.accounts.Register(ctx, &model.RegisterRequest{
		UserID:   "nobody",
		Password: "secret",
		Name:     "No Area",
		Type:     model.UserTypeCustomer,
		AreaID:   "00000000-0000-0000-0000-000000000099",
	})
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeValidation, model.ErrorCode(err))
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.accounts.Authenticate(ctx, "ravi", "secret456")
	require.NoError(t, err)
	assert.Equal(t, f.customer.ID, user.ID)

	_, err = f.accounts.Authenticate(ctx, "ravi", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredential)

	_, err = f.accounts.Authenticate(ctx, "ghost", "secret456")
	assert.ErrorIs(t, err, model.ErrInvalidCredential)
}

func TestUpdateProfileVendorRenameSyncsArea(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 2)

	name := "Crystal Springs"
	_, err := f.accounts.UpdateProfile(ctx, f.vendor.ID, &model.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)

	areas, err := f.accounts.ListAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "Crystal Springs", areas[0].VendorName)

	// Past orders keep the name they were placed under.
	got, err := f.orders.Get(ctx, order.ID, f.customer)
	require.NoError(t, err)
	assert.Equal(t, "Blue Falls Water", got.VendorName)
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.address.IsDefault)
}

func TestSetDefaultAddressMovesFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second, err := f.accounts.CreateAddress(ctx, f.customer.ID, &model.AddressRequest{
		Label:   "Office",
		Street:  "9 Commerce Street",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62702",
		AreaID:  f.areaID.String(),
	})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	require.NoError(t, f.accounts.SetDefaultAddress(ctx, f.customer.ID, second.ID))

	addrs, err := f.accounts.ListAddresses(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, addrs, 2)

	defaults := 0
	for _, a := range addrs {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestDeleteDefaultAddressPromotesAnother(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second, err := f.accounts.CreateAddress(ctx, f.customer.ID, &model.AddressRequest{
		Label:   "Office",
		Street:  "9 Commerce Street",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62702",
		AreaID:  f.areaID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteAddress(ctx, f.customer.ID, f.address.ID))

	addrs, err := f.accounts.ListAddresses(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, second.ID, addrs[0].ID)
	assert.True(t, addrs[0].IsDefault)
}

func TestAddressOwnershipEnforced(t *testing.T) {
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

	err = f.accounts.SetDefaultAddress(ctx, other.ID, f.address.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	err = f.accounts.DeleteAddress(ctx, other.ID, f.address.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestDeleteVendorCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t, 1)
	_, err := f.invoices.Generate(ctx, order.ID, f.vendor.ID)
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteAccount(ctx, f.vendor.ID))

	areas, err := f.accounts.ListAreas(ctx)
	require.NoError(t, err)
	assert.Empty(t, areas)

	items, err := f.inventory.ListByVendor(ctx, f.vendor.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	orders, err := f.orders.ListForUser(ctx, f.customer, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = f.accounts.GetByID(ctx, f.vendor.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteCustomerCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.placeOrder(t, 1)

	require.NoError(t, f.accounts.DeleteAccount(ctx, f.customer.ID))

	orders, err := f.orders.ListForUser(ctx, f.vendor, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)

	addrs, err := f.accounts.ListAddresses(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Empty(t, addrs)
}
