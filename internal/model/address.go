package model

import (
	"time"

	"github.com/google/uuid"
)

// Address belongs to exactly one customer and resolves delivery through the
// service area it is tagged with. Among a customer's addresses at most one is
// the default, and every customer with addresses has exactly one default.
type Address struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Label     string    `json:"label" db:"label"`
	Street    string    `json:"street" db:"street"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	ZipCode   string    `json:"zipCode" db:"zip_code"`
	IsDefault bool      `json:"isDefault" db:"is_default"`
	AreaID    uuid.UUID `json:"areaId" db:"area_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AddressRequest is the payload for creating or editing an address.
type AddressRequest struct {
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	IsDefault bool   `json:"isDefault"`
	AreaID    string `json:"areaId"`
}
