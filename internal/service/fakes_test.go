package service

import (
	"bytes"
	"context"
	"io"
	"time"

	"wifiportal/internal/models"
	"wifiportal/internal/repository"
)

// In-memory store fakes. They implement just enough of the repository
// behavior for the access rules to be exercised without Postgres.

type fakeTenantStore struct {
	tenants map[string]models.Tenant
}

func newFakeTenantStore(tenants ...models.Tenant) *fakeTenantStore {
	s := &fakeTenantStore{tenants: map[string]models.Tenant{}}
	for _, t := range tenants {
		s.tenants[t.ID] = t
	}
	return s
}

func (s *fakeTenantStore) Create(ctx context.Context, t models.Tenant) error {
	s.tenants[t.ID] = t
	return nil
}

func (s *fakeTenantStore) GetByID(ctx context.Context, id string) (models.Tenant, error) {
	t, ok := s.tenants[id]
	if !ok {
		return models.Tenant{}, repository.ErrTenantNotFound
	}
	return t, nil
}

func (s *fakeTenantStore) FindByIdentifier(ctx context.Context, identifier string) (models.Tenant, error) {
	for _, t := range s.tenants {
		if t.Phone == identifier || (t.Email != nil && *t.Email == identifier) {
			return t, nil
		}
	}
	return models.Tenant{}, repository.ErrTenantNotFound
}

func (s *fakeTenantStore) ExistsDuplicate(ctx context.Context, email *string, phone, idNumber, mac string) (bool, error) {
	for _, t := range s.tenants {
		if t.Phone == phone || t.IDNumber == idNumber || t.MACAddress == mac {
			return true, nil
		}
		if email != nil && t.Email != nil && *t.Email == *email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	out := make([]models.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeTenantStore) ListExpired(ctx context.Context, now time.Time) ([]models.Tenant, error) {
	var out []models.Tenant
	for _, t := range s.tenants {
		if t.WifiAccess && t.ExpiryDate != nil && t.ExpiryDate.Before(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTenantStore) UpdateAccess(ctx context.Context, id string, status models.TenantStatus, wifiAccess bool, expiry *time.Time) error {
	t, ok := s.tenants[id]
	if !ok {
		return repository.ErrTenantNotFound
	}
	t.Status = status
	t.WifiAccess = wifiAccess
	if expiry != nil {
		t.ExpiryDate = expiry
	}
	s.tenants[id] = t
	return nil
}

func (s *fakeTenantStore) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	t, ok := s.tenants[id]
	if !ok {
		return repository.ErrTenantNotFound
	}
	t.PasswordHash = passwordHash
	s.tenants[id] = t
	return nil
}

func (s *fakeTenantStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.tenants[id]; !ok {
		return repository.ErrTenantNotFound
	}
	delete(s.tenants, id)
	return nil
}

type fakePaymentStore struct {
	payments map[string]models.Payment
}

func newFakePaymentStore(payments ...models.Payment) *fakePaymentStore {
	s := &fakePaymentStore{payments: map[string]models.Payment{}}
	for _, p := range payments {
		s.payments[p.ID] = p
	}
	return s
}

func (s *fakePaymentStore) Create(ctx context.Context, p models.Payment) error {
	s.payments[p.ID] = p
	return nil
}

func (s *fakePaymentStore) GetByID(ctx context.Context, id string) (models.Payment, error) {
	p, ok := s.payments[id]
	if !ok {
		return models.Payment{}, repository.ErrPaymentNotFound
	}
	return p, nil
}

func (s *fakePaymentStore) ListAll(ctx context.Context) ([]models.Payment, error) {
	out := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakePaymentStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range s.payments {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) Review(ctx context.Context, id string, status models.PaymentStatus, reviewedBy string) error {
	p, ok := s.payments[id]
	if !ok || p.Status != models.PaymentStatusPending {
		return repository.ErrPaymentNotFound
	}
	p.Status = status
	p.ReviewedBy = &reviewedBy
	if status == models.PaymentStatusApproved {
		now := time.Now().UTC()
		p.ApprovedAt = &now
	}
	s.payments[id] = p
	return nil
}

func (s *fakePaymentStore) DeleteByTenant(ctx context.Context, tenantID string) error {
	for id, p := range s.payments {
		if p.TenantID == tenantID {
			delete(s.payments, id)
		}
	}
	return nil
}

type fakeProofStore struct {
	objects map[string][]byte
	types   map[string]string
	removed []string
}

func newFakeProofStore() *fakeProofStore {
	return &fakeProofStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeProofStore) Bucket() string { return "proofs" }

func (s *fakeProofStore) PutProof(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[objectKey] = data
	s.types[objectKey] = contentType
	return nil
}

func (s *fakeProofStore) GetProof(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	data, ok := s.objects[objectKey]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeProofStore) RemoveProof(ctx context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	s.removed = append(s.removed, objectKey)
	return nil
}

type syncEvent struct {
	TenantID string
	MAC      string
	Allow    bool
}

type fakePublisher struct {
	syncs    []syncEvent
	contacts []string
}

func (p *fakePublisher) PublishWifiSync(ctx context.Context, tenantID, mac string, allow bool) error {
	p.syncs = append(p.syncs, syncEvent{TenantID: tenantID, MAC: mac, Allow: allow})
	return nil
}

func (p *fakePublisher) PublishContactNotify(ctx context.Context, messageID, name, email string) error {
	p.contacts = append(p.contacts, messageID)
	return nil
}
