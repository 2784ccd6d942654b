package model

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceDueDays is the payment window applied to every generated invoice.
const InvoiceDueDays = 30

// InvoiceStatus has no enforced ordering among its values.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceDraft || s == InvoiceSent || s == InvoicePaid
}

// Invoice is derived from exactly one order, at most once per order. Only
// Status mutates after creation.
type Invoice struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	OrderID       uuid.UUID     `json:"orderId" db:"order_id"`
	Amount        float64       `json:"amount" db:"amount"`
	GeneratedDate time.Time     `json:"generatedDate" db:"generated_date"`
	DueDate       time.Time     `json:"dueDate" db:"due_date"`
	Status        InvoiceStatus `json:"status" db:"status"`
}

// InvoiceStatusRequest is the payload for an invoice status change.
type InvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status"`
}
