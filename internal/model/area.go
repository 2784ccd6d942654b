package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceArea is a named delivery zone owned by exactly one vendor. The name
// is unique case-insensitively. VendorName is a display copy of the owner's
// name, kept in sync when the owner renames but never rewritten onto past
// orders.
type ServiceArea struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	VendorID   uuid.UUID `json:"vendorId" db:"vendor_id"`
	VendorName string    `json:"vendorName" db:"vendor_name"`
	CreatedAt  time.Time `json:"createdDate" db:"created_at"`
}
