// Package store defines the entity persistence contract. Two interchangeable
// backends implement it: postgres (relational service) and memory (local
// flat snapshot). The lifecycle services never depend on which is active.
//
// Lookup methods return (nil, nil) when the record does not exist; services
// translate that into a NOT_FOUND domain error. Uniqueness violations are
// returned as the matching CONFLICT domain error by the backend itself.
package store

import (
	"context"

	"aquaflow/internal/model"

	"github.com/google/uuid"
)

// UserStore persists accounts.
type UserStore interface {
	// Create inserts a new user. Returns model.ErrDuplicateUserID when the
	// human-chosen handle is already taken.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUserID retrieves a user by login handle.
	GetByUserID(ctx context.Context, userID string) (*model.User, error)

	// Update rewrites the mutable user fields.
	Update(ctx context.Context, user *model.User) error

	// Delete removes the user record only; cascades are orchestrated by the
	// account service.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AreaStore persists service areas.
type AreaStore interface {
	// Create inserts a new area. Returns model.ErrAreaTaken when the name
	// collides case-insensitively with an existing area.
	Create(ctx context.Context, area *model.ServiceArea) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceArea, error)

	// GetByName performs a case-insensitive name lookup.
	GetByName(ctx context.Context, name string) (*model.ServiceArea, error)

	GetByVendor(ctx context.Context, vendorID uuid.UUID) (*model.ServiceArea, error)

	// List returns all areas, most recently created first.
	List(ctx context.Context) ([]model.ServiceArea, error)

	Update(ctx context.Context, area *model.ServiceArea) error

	DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error
}

// AddressStore persists customer addresses.
type AddressStore interface {
	Create(ctx context.Context, addr *model.Address) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)

	// ListByUser returns the customer's addresses, default first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)

	Update(ctx context.Context, addr *model.Address) error

	Delete(ctx context.Context, id uuid.UUID) error

	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// SetDefault marks addressID as the customer's default and clears the
	// flag on every other address of the same customer in one write.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
}

// InventoryStore persists vendor stock and price records.
type InventoryStore interface {
	Create(ctx context.Context, item *model.InventoryItem) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)

	// ListByVendor returns the vendor's items, most recently created first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.InventoryItem, error)

	Update(ctx context.Context, item *model.InventoryItem) error

	Delete(ctx context.Context, id uuid.UUID) error

	DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error

	// Decrement applies the delivery decrement, clamping each item's stock
	// at zero. Lines referencing items that no longer exist are skipped and
	// their IDs returned; applied lines are not rolled back.
	Decrement(ctx context.Context, vendorID uuid.UUID, lines []model.DecrementLine) (missing []uuid.UUID, err error)
}

// OrderStore persists orders with their frozen items and message threads.
type OrderStore interface {
	// Create inserts the order and its items atomically where the backend
	// supports it.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order with items and messages attached.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// ListByVendor returns the vendor's orders, newest first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Order, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error

	SetInvoiceID(ctx context.Context, id, invoiceID uuid.UUID) error

	AppendMessage(ctx context.Context, msg *model.OrderMessage) error

	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error

	DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error
}

// InvoiceStore persists invoices derived from orders.
type InvoiceStore interface {
	Create(ctx context.Context, inv *model.Invoice) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)

	GetByOrder(ctx context.Context, orderID uuid.UUID) (*model.Invoice, error)

	// ListByVendor returns invoices for the vendor's orders, newest first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.Invoice, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvoiceStatus) error

	DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error
}

// Store bundles the per-entity stores of one backend.
type Store struct {
	Users     UserStore
	Areas     AreaStore
	Addresses AddressStore
	Inventory InventoryStore
	Orders    OrderStore
	Invoices  InvoiceStore
}
