package model

import (
	"time"

	"github.com/google/uuid"
)

// LowStockThreshold is the stock level below which an item appears in the
// vendor's low-stock view. Derived at read time, never stored.
const LowStockThreshold = 50

// InventoryItem is a sellable product owned by a single vendor. Stock is
// mutated only by vendor edits and by the automatic decrement on delivery.
type InventoryItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	VendorID    uuid.UUID `json:"vendorId" db:"vendor_id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// InventoryItemRequest is the payload for creating or editing an item.
type InventoryItemRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
}

// DecrementLine is one line of a delivery-triggered stock decrement.
type DecrementLine struct {
	ItemID   uuid.UUID
	Quantity int
}
