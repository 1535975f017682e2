package models

import "time"

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
	TenantStatusBlocked  TenantStatus = "blocked"
)

// Tenant is a resident whose account gates physical WiFi access.
// WifiAccess may only be true while Status != blocked.
type Tenant struct {
	ID           string
	Name         string
	RoomNumber   string
	IDNumber     string
	Phone        string
	Email        *string
	MACAddress   string
	PasswordHash []byte
	Status       TenantStatus
	WifiAccess   bool
	ExpiryDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
