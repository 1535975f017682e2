package handlers

import (
	"time"

	"wifiportal/internal/models"
)

type tenantResponse struct {
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

func toTenantResponse(t models.Tenant) tenantResponse {
	resp := tenantResponse{
		ID:         t.ID,
		Name:       t.Name,
		RoomNumber: t.RoomNumber,
		IDNumber:   t.IDNumber,
		Phone:      t.Phone,
		MACAddress: t.MACAddress,
		Status:     string(t.Status),
		WifiAccess: t.WifiAccess,
		ExpiryDate: t.ExpiryDate,
		CreatedAt:  t.CreatedAt,
	}
	if t.Email != nil {
		resp.Email = *t.Email
	}
	return resp
}

type paymentTenantRef struct {
	Name       string `json:"name"`
	RoomNumber string `json:"roomNumber"`
}

type paymentResponse struct {
	ID         string            `json:"id"`
	TenantID   string            `json:"tenantId"`
	Type       string            `json:"type"`
	Status     string            `json:"status"`
	FileName   string            `json:"fileName,omitempty"`
	SizeBytes  int64             `json:"sizeBytes,omitempty"`
	UploadedAt time.Time         `json:"uploadedAt"`
	ApprovedAt *time.Time        `json:"approvedAt,omitempty"`
	Tenant     *paymentTenantRef `json:"tenant,omitempty"`
}

func toPaymentResponse(p models.Payment) paymentResponse {
	resp := paymentResponse{
		ID:         p.ID,
		TenantID:   p.TenantID,
		Type:       string(p.Type),
		Status:     string(p.Status),
		FileName:   p.FileName,
		SizeBytes:  p.SizeBytes,
		UploadedAt: p.UploadedAt,
		ApprovedAt: p.ApprovedAt,
	}
	if p.TenantName != "" || p.TenantRoom != "" {
		resp.Tenant = &paymentTenantRef{Name: p.TenantName, RoomNumber: p.TenantRoom}
	}
	return resp
}

func toPaymentResponses(payments []models.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out
}
