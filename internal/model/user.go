package model

import (
	"time"

	"github.com/google/uuid"
)

// UserType distinguishes the two sides of the marketplace.
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeVendor   UserType = "vendor"
)

// User represents a registered account. UserID is the human-chosen login
// handle, unique across the system and used in place of an email address.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       string     `json:"userId" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Phone        string     `json:"phone,omitempty" db:"phone"`
	Type         UserType   `json:"type" db:"user_type"`
	AreaID       *uuid.UUID `json:"areaId,omitempty" db:"area_id"`
	ServiceArea  string     `json:"serviceArea,omitempty" db:"service_area"`
	PasswordHash string     `json:"-" db:"password_hash"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// RegisterRequest is the payload for account registration. Customers select
// an existing service area by ID; vendors claim a new area by name.
type RegisterRequest struct {
	UserID   string   `json:"userId"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone,omitempty"`
	Type     UserType `json:"type"`
	AreaID   string   `json:"areaId,omitempty"`
	AreaName string   `json:"areaName,omitempty"`
}

// LoginRequest is the payload for session creation.
type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil means leave
// unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// SessionResponse is returned on successful login or registration.
type SessionResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
