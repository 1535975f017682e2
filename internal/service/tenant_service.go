package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"wifiportal/internal/config"
	"wifiportal/internal/models"
)

// TenantService applies admin actions to tenant accounts. Every mutation
// preserves the access invariant: wifi_access is never true while a
// tenant is blocked.
type TenantService struct {
	tenants  tenantStore
	payments paymentStore
	proofs   proofStore
	events   eventPublisher
	access   config.AccessConfig
	log      zerolog.Logger
}

func NewTenantService(tenants tenantStore, payments paymentStore, proofs proofStore, events eventPublisher, access config.AccessConfig, log zerolog.Logger) *TenantService {
	return &TenantService{
		tenants:  tenants,
		payments: payments,
		proofs:   proofs,
		events:   events,
		access:   access,
		log:      log,
	}
}

func (s *TenantService) List(ctx context.Context) ([]models.Tenant, error) {
	return s.tenants.List(ctx)
}

func (s *TenantService) Get(ctx context.Context, id string) (models.Tenant, error) {
	return s.tenants.GetByID(ctx, id)
}

// Activate turns a tenant's WiFi access on, extending the expiry date to
// a full grant period when none remains.
func (s *TenantService) Activate(ctx context.Context, id string) (models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return models.Tenant{}, err
	}
	if tenant.Status == models.TenantStatusBlocked {
		return models.Tenant{}, ErrTenantBlocked
	}

	expiry := grantExpiry(tenant.ExpiryDate, s.access.GrantPeriod)
	if err := s.tenants.UpdateAccess(ctx, id, models.TenantStatusActive, true, &expiry); err != nil {
		return models.Tenant{}, err
	}

	s.syncAccess(ctx, tenant, true)
	return s.tenants.GetByID(ctx, id)
}

func (s *TenantService) Deactivate(ctx context.Context, id string) (models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return models.Tenant{}, err
	}
	if tenant.Status == models.TenantStatusBlocked {
		return models.Tenant{}, ErrTenantBlocked
	}

	if err := s.tenants.UpdateAccess(ctx, id, models.TenantStatusInactive, false, nil); err != nil {
		return models.Tenant{}, err
	}

	s.syncAccess(ctx, tenant, false)
	return s.tenants.GetByID(ctx, id)
}

// Block suspends a tenant and revokes any WiFi access they held.
func (s *TenantService) Block(ctx context.Context, id string) (models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return models.Tenant{}, err
	}

	if err := s.tenants.UpdateAccess(ctx, id, models.TenantStatusBlocked, false, nil); err != nil {
		return models.Tenant{}, err
	}

	s.syncAccess(ctx, tenant, false)
	return s.tenants.GetByID(ctx, id)
}

// Unblock lifts a block. The tenant returns to inactive: access itself
// comes back through a fresh activation or payment approval.
func (s *TenantService) Unblock(ctx context.Context, id string) (models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return models.Tenant{}, err
	}
	if tenant.Status != models.TenantStatusBlocked {
		return tenant, nil
	}

	if err := s.tenants.UpdateAccess(ctx, id, models.TenantStatusInactive, false, nil); err != nil {
		return models.Tenant{}, err
	}
	return s.tenants.GetByID(ctx, id)
}

// Approve confirms a pending registration without granting access.
func (s *TenantService) Approve(ctx context.Context, id string) (models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return models.Tenant{}, err
	}
	if tenant.Status == models.TenantStatusBlocked {
		return models.Tenant{}, ErrTenantBlocked
	}

	if err := s.tenants.UpdateAccess(ctx, id, models.TenantStatusActive, tenant.WifiAccess, nil); err != nil {
		return models.Tenant{}, err
	}
	return s.tenants.GetByID(ctx, id)
}

// Delete removes a tenant along with their payments and stored proofs.
func (s *TenantService) Delete(ctx context.Context, id string) error {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return err
	}

	payments, err := s.payments.ListByTenant(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range payments {
		if p.ObjectKey == "" {
			continue
		}
		if err := s.proofs.RemoveProof(ctx, p.ObjectKey); err != nil {
			s.log.Warn().Err(err).Str("payment_id", p.ID).Msg("proof cleanup failed")
		}
	}

	if err := s.payments.DeleteByTenant(ctx, id); err != nil {
		return err
	}
	if err := s.tenants.Delete(ctx, id); err != nil {
		return err
	}

	s.syncAccess(ctx, tenant, false)
	s.log.Info().Str("tenant_id", id).Int("payments", len(payments)).Msg("tenant deleted")
	return nil
}

// ExpireOverdue revokes access for tenants whose grant has lapsed and
// returns how many were swept.
func (s *TenantService) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.tenants.ListExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	for _, tenant := range expired {
		if err := s.tenants.UpdateAccess(ctx, tenant.ID, models.TenantStatusInactive, false, nil); err != nil {
			s.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("expiry sweep update failed")
			continue
		}
		s.syncAccess(ctx, tenant, false)
	}
	return len(expired), nil
}

func (s *TenantService) syncAccess(ctx context.Context, tenant models.Tenant, allow bool) {
	if err := s.events.PublishWifiSync(ctx, tenant.ID, tenant.MACAddress, allow); err != nil {
		s.log.Warn().Err(err).Str("tenant_id", tenant.ID).Msg("wifi sync enqueue failed")
	}
}

// grantExpiry extends an existing unexpired grant, or starts a fresh one.
func grantExpiry(current *time.Time, grant time.Duration) time.Time {
	base := time.Now()
	if current != nil && current.After(base) {
		base = *current
	}
	return base.Add(grant)
}
