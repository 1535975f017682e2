package models

import "time"

type PaymentType string

const (
	PaymentTypePOP  PaymentType = "POP"
	PaymentTypeCash PaymentType = "cash"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// Payment records a single payment submission. Proof uploads carry an
// object reference; cash payments have none. Status moves from pending
// to approved or rejected exactly once.
type Payment struct {
	ID          string
	TenantID    string
	Type        PaymentType
	Status      PaymentStatus
	Bucket      string
	ObjectKey   string
	FileName    string
	ContentType string
	SizeBytes   int64
	UploadedAt  time.Time
	ApprovedAt  *time.Time
	ReviewedBy  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined tenant fields for the admin review list.
	TenantName string
	TenantRoom string
}
