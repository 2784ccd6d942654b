package service

import (
	"context"

	"aquaflow/internal/model"

	"github.com/google/uuid"
)

// AccountService covers accounts, service area assignment and addresses —
// the two points where the area/vendor/address binding invariants can be
// violated are registration and address writes, both owned here.
type AccountService interface {
	// Register creates an account. Vendors claim a new service area by
	// name; customers must reference an existing area.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Authenticate verifies a login handle and password.
	Authenticate(ctx context.Context, userID, password string) (*model.User, error)

	// GetByID retrieves an account.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdateProfile updates name and phone. Renaming a vendor propagates to
	// the vendor's service area display name but never to past orders.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error)

	// DeleteAccount removes the account and cascades per account type.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error

	// ListAreas returns all service areas, newest first.
	ListAreas(ctx context.Context) ([]model.ServiceArea, error)

	// ResolveVendorForArea maps an area to the vendor that owns it.
	ResolveVendorForArea(ctx context.Context, areaID uuid.UUID) (uuid.UUID, error)

	// ListAddresses returns the customer's addresses, default first.
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error)

	// CreateAddress adds an address. The customer's first address becomes
	// the default automatically.
	CreateAddress(ctx context.Context, userID uuid.UUID, req *model.AddressRequest) (*model.Address, error)

	// UpdateAddress edits an address the actor owns, re-validating the area.
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req *model.AddressRequest) (*model.Address, error)

	// DeleteAddress removes an address the actor owns.
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error

	// SetDefaultAddress moves the default flag to the given address.
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

// InventoryService covers the per-vendor stock and price ledger.
type InventoryService interface {
	// ListByVendor returns the vendor's own items.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.InventoryItem, error)

	// Catalog returns the items sellable in an area, i.e. the inventory of
	// the vendor owning it.
	Catalog(ctx context.Context, areaID uuid.UUID) ([]model.InventoryItem, error)

	// CreateItem adds an item to the vendor's ledger.
	CreateItem(ctx context.Context, vendorID uuid.UUID, req *model.InventoryItemRequest) (*model.InventoryItem, error)

	// UpdateItem edits an item the vendor owns.
	UpdateItem(ctx context.Context, vendorID, itemID uuid.UUID, req *model.InventoryItemRequest) (*model.InventoryItem, error)

	// DeleteItem removes an item the vendor owns.
	DeleteItem(ctx context.Context, vendorID, itemID uuid.UUID) error

	// LowStock returns the vendor's items below the low-stock threshold.
	LowStock(ctx context.Context, vendorID uuid.UUID) ([]model.InventoryItem, error)
}

// OrderService is the order lifecycle: creation, the status state machine
// and its side effects, and the message thread.
type OrderService interface {
	// Place converts a cart into an order owned by the vendor of the
	// address's area, snapshotting items, prices and the address.
	Place(ctx context.Context, customerID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error)

	// Get retrieves an order visible to the actor.
	Get(ctx context.Context, orderID uuid.UUID, actor *model.User) (*model.Order, error)

	// ListForUser returns the actor's orders, newest first. For customers a
	// non-zero year/month filters by order date.
	ListForUser(ctx context.Context, actor *model.User, year int, month int) ([]model.Order, error)

	// SetStatus applies a vendor status change, decrementing inventory on
	// the transition into delivered.
	SetStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, actingVendorID uuid.UUID) (*model.Order, error)

	// AppendMessage adds to the order's append-only thread. Allowed for
	// either party in any status.
	AppendMessage(ctx context.Context, orderID uuid.UUID, actor *model.User, text string) (*model.OrderMessage, error)
}

// InvoiceService derives invoices from orders.
type InvoiceService interface {
	// Generate creates the order's single invoice. Blocked for cancelled
	// orders and when an invoice already exists.
	Generate(ctx context.Context, orderID, actingVendorID uuid.UUID) (*model.Invoice, error)

	// UpdateStatus moves an invoice freely among draft, sent and paid.
	UpdateStatus(ctx context.Context, invoiceID uuid.UUID, status model.InvoiceStatus, actingVendorID uuid.UUID) (*model.Invoice, error)

	// ListByVendor returns invoices for the vendor's orders.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Invoice, error)
}

// ReportService aggregates delivered-order revenue. Grouping is by delivery
// date, not order date.
type ReportService interface {
	// Monthly reports one calendar month for a vendor.
	Monthly(ctx context.Context, vendorID uuid.UUID, year int, month int) (*model.MonthlyReport, error)

	// Yearly reports every month of a year that has delivered orders.
	Yearly(ctx context.Context, vendorID uuid.UUID, year int) ([]model.MonthlyReport, error)
}
