// Package client is the Go SDK for the WiFi portal API. It carries the
// pieces the browser app kept client-side: role-scoped bearer sessions,
// per-endpoint request helpers, list filtering and a polling watcher.
package client

import "time"

// Roles under which sessions are stored. Tenant and admin tokens are
// independent: logging one out leaves the other intact.
const (
	RoleTenant = "tenant"
	RoleAdmin  = "admin"
)

type Tenant struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	RoomNumber string     `json:"roomNumber"`
	IDNumber   string     `json:"idNumber"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email,omitempty"`
	MACAddress string     `json:"macAddress"`
	Status     string     `json:"status"`
	WifiAccess bool       `json:"wifiAccess"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type PaymentTenant struct {
	Name       string `json:"name"`
	RoomNumber string `json:"roomNumber"`
}

type Payment struct {
	ID         string         `json:"id"`
	TenantID   string         `json:"tenantId"`
	Type       string         `json:"type"`
	Status     string         `json:"status"`
	FileName   string         `json:"fileName,omitempty"`
	SizeBytes  int64          `json:"sizeBytes,omitempty"`
	UploadedAt time.Time      `json:"uploadedAt"`
	ApprovedAt *time.Time     `json:"approvedAt,omitempty"`
	Tenant     *PaymentTenant `json:"tenant,omitempty"`
}

type Admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RegisterInput mirrors the registration form.
type RegisterInput struct {
	Name       string `json:"name"`
	RoomNumber string `json:"roomNumber"`
	IDNumber   string `json:"idNumber"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	MACAddress string `json:"macAddress"`
	Password   string `json:"password"`
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}
