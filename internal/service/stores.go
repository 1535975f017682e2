package service

import (
	"context"
	"io"
	"time"

	"wifiportal/internal/models"
)

// Store interfaces are satisfied by the repository, storage and queue
// packages. Services depend on these rather than the concrete types so
// the access rules can be exercised without a database.

type tenantStore interface {
	Create(ctx context.Context, t models.Tenant) error
	GetByID(ctx context.Context, id string) (models.Tenant, error)
	FindByIdentifier(ctx context.Context, identifier string) (models.Tenant, error)
	ExistsDuplicate(ctx context.Context, email *string, phone, idNumber, mac string) (bool, error)
	List(ctx context.Context) ([]models.Tenant, error)
	ListExpired(ctx context.Context, now time.Time) ([]models.Tenant, error)
	UpdateAccess(ctx context.Context, id string, status models.TenantStatus, wifiAccess bool, expiry *time.Time) error
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
	Delete(ctx context.Context, id string) error
}

type paymentStore interface {
	Create(ctx context.Context, p models.Payment) error
	GetByID(ctx context.Context, id string) (models.Payment, error)
	ListAll(ctx context.Context) ([]models.Payment, error)
	ListByTenant(ctx context.Context, tenantID string) ([]models.Payment, error)
	Review(ctx context.Context, id string, status models.PaymentStatus, reviewedBy string) error
	DeleteByTenant(ctx context.Context, tenantID string) error
}

type adminStore interface {
	Create(ctx context.Context, admin models.Admin) error
	FindByEmail(ctx context.Context, email string) (models.Admin, error)
	Count(ctx context.Context) (int, error)
}

type contactStore interface {
	Create(ctx context.Context, msg models.ContactMessage) error
}

type proofStore interface {
	Bucket() string
	PutProof(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error
	GetProof(ctx context.Context, objectKey string) (io.ReadCloser, error)
	RemoveProof(ctx context.Context, objectKey string) error
}

type eventPublisher interface {
	PublishWifiSync(ctx context.Context, tenantID, mac string, allow bool) error
	PublishContactNotify(ctx context.Context, messageID, name, email string) error
}
