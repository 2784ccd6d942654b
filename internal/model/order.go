package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the order state machine value. Pending is initial;
// delivered and cancelled are terminal.
type OrderStatus string

const (
	StatusPending      OrderStatus = "pending"
	StatusAcknowledged OrderStatus = "acknowledged"
	StatusConfirmed    OrderStatus = "confirmed"
	StatusInTransit    OrderStatus = "in-transit"
	StatusDelivered    OrderStatus = "delivered"
	StatusCancelled    OrderStatus = "cancelled"
)

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAcknowledged, StatusConfirmed,
		StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further status changes.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// MessageSender identifies which side of the order wrote a message.
type MessageSender string

const (
	SenderCustomer MessageSender = "customer"
	SenderVendor   MessageSender = "vendor"
)

// OrderItem is a frozen copy of an inventory item at order time. Later price
// or stock edits never alter historical orders.
type OrderItem struct {
	ID       uuid.UUID `json:"id" db:"inventory_item_id"`
	Name     string    `json:"name" db:"name"`
	Price    float64   `json:"price" db:"price"`
	Quantity int       `json:"quantity" db:"quantity"`
}

// OrderMessage is one entry of an order's append-only message thread.
type OrderMessage struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	OrderID    uuid.UUID     `json:"orderId" db:"order_id"`
	Sender     MessageSender `json:"sender" db:"sender"`
	SenderName string        `json:"senderName" db:"sender_name"`
	Message    string        `json:"message" db:"message"`
	Timestamp  time.Time     `json:"timestamp" db:"created_at"`
}

// Order is created whole at placement and append-mostly afterwards: only
// Status, InvoiceID and Messages mutate. Customer, vendor and address fields
// are snapshots taken at creation.
type Order struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	CustomerID     uuid.UUID      `json:"customerId" db:"customer_id"`
	CustomerName   string         `json:"customerName" db:"customer_name"`
	CustomerPhone  string         `json:"customerPhone" db:"customer_phone"`
	CustomerUserID string         `json:"customerUserId" db:"customer_user_id"`
	Address        Address        `json:"address"`
	Items          []OrderItem    `json:"items"`
	Total          float64        `json:"total" db:"total"`
	Status         OrderStatus    `json:"status" db:"status"`
	OrderDate      time.Time      `json:"orderDate" db:"order_date"`
	DeliveryDate   time.Time      `json:"deliveryDate" db:"delivery_date"`
	PreferredTime  string         `json:"preferredTime" db:"preferred_time"`
	VendorID       uuid.UUID      `json:"vendorId" db:"vendor_id"`
	VendorName     string         `json:"vendorName" db:"vendor_name"`
	AreaID         uuid.UUID      `json:"areaId" db:"area_id"`
	InvoiceID      *uuid.UUID     `json:"invoiceId,omitempty" db:"invoice_id"`
	Messages       []OrderMessage `json:"messages"`
}

// CartItem is one line of an unsubmitted cart. Name and price are resolved
// server-side from the vendor's ledger at placement.
type CartItem struct {
	ItemID   uuid.UUID `json:"itemId"`
	Quantity int       `json:"quantity"`
}

// PlaceOrderRequest is the payload for order creation.
type PlaceOrderRequest struct {
	AddressID     uuid.UUID  `json:"addressId"`
	Items         []CartItem `json:"items"`
	DeliveryDate  time.Time  `json:"deliveryDate"`
	PreferredTime string     `json:"preferredTime"`
}

// StatusUpdateRequest is the payload for a vendor status change.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}

// MessageRequest is the payload for appending an order message.
type MessageRequest struct {
	Message string `json:"message"`
}
