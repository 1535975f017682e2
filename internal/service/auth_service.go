package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"wifiportal/internal/config"
	"wifiportal/internal/ids"
	"wifiportal/internal/models"
	"wifiportal/internal/security"
	"wifiportal/internal/validate"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTenantBlocked      = errors.New("tenant is blocked")
	ErrDuplicateTenant    = errors.New("tenant already registered")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

type AuthService struct {
	tenants tenantStore
	admins  adminStore
	cache   *redis.Client
	cfg     *config.AppConfig
	log     zerolog.Logger
}

func NewAuthService(tenants tenantStore, admins adminStore, cache *redis.Client, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		tenants: tenants,
		admins:  admins,
		cache:   cache,
		cfg:     cfg,
		log:     log,
	}
}

type RegisterInput struct {
	Name       string
	RoomNumber string
	IDNumber   string
	Phone      string
	Email      string
	MACAddress string
	Password   string
}

// Register creates a tenant account. New tenants start inactive without
// WiFi access; access is granted when an admin approves a payment.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.Tenant, error) {
	phone := validate.NormalizePhone(input.Phone)
	mac := validate.NormalizeMAC(input.MACAddress)
	idNumber := strings.TrimSpace(input.IDNumber)

	var email *string
	if trimmed := strings.TrimSpace(strings.ToLower(input.Email)); trimmed != "" {
		email = &trimmed
	}

	exists, err := s.tenants.ExistsDuplicate(ctx, email, phone, idNumber, mac)
	if err != nil {
		return models.Tenant{}, err
	}
	if exists {
		return models.Tenant{}, ErrDuplicateTenant
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.Tenant{}, err
	}

	tenant := models.Tenant{
		ID:           ids.New(),
		Name:         strings.TrimSpace(input.Name),
		RoomNumber:   strings.TrimSpace(input.RoomNumber),
		IDNumber:     idNumber,
		Phone:        phone,
		Email:        email,
		MACAddress:   mac,
		PasswordHash: passwordHash,
		Status:       models.TenantStatusInactive,
		WifiAccess:   false,
	}

	if err := s.tenants.Create(ctx, tenant); err != nil {
		return models.Tenant{}, err
	}

	s.log.Info().Str("tenant_id", tenant.ID).Str("room", tenant.RoomNumber).Msg("tenant registered")
	return tenant, nil
}

type TenantLoginResult struct {
	Token  string
	Tenant models.Tenant
}

// Login authenticates a tenant by email or phone number.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (TenantLoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	tenant, err := s.tenants.FindByIdentifier(ctx, identifier)
	if err != nil {
		return TenantLoginResult{}, ErrInvalidCredentials
	}

	ok, err := security.VerifyPassword(password, tenant.PasswordHash)
	if err != nil || !ok {
		return TenantLoginResult{}, ErrInvalidCredentials
	}

	if tenant.Status == models.TenantStatusBlocked {
		return TenantLoginResult{}, ErrTenantBlocked
	}

	token, err := security.GenerateAccessToken(
		s.cfg.Security.TenantJWTSecret,
		tenant.ID,
		security.RoleTenant,
		tenant.Name,
		s.cfg.Security.TenantTokenTTL,
	)
	if err != nil {
		return TenantLoginResult{}, err
	}

	return TenantLoginResult{Token: token, Tenant: tenant}, nil
}

type AdminLoginResult struct {
	Token string
	Admin models.Admin
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (AdminLoginResult, error) {
	admin, err := s.admins.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	token, err := security.GenerateAccessToken(
		s.cfg.Security.AdminJWTSecret,
		admin.ID,
		security.RoleAdmin,
		admin.Name,
		s.cfg.Security.AdminTokenTTL,
	)
	if err != nil {
		return AdminLoginResult{}, err
	}

	return AdminLoginResult{Token: token, Admin: admin}, nil
}

// ForgotPassword issues a single-use reset token kept in Redis under its
// hash until the TTL lapses. The response never reveals whether the
// address belongs to an account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	tenant, err := s.tenants.FindByIdentifier(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil
	}

	token, hash, err := security.GenerateResetToken()
	if err != nil {
		return err
	}

	key := resetTokenKey(hash)
	if err := s.cache.Set(ctx, key, tenant.ID, s.cfg.Security.ResetTokenTTL).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	// Mail delivery is handled by the notification pipeline; the token is
	// logged so operators can hand out links while that pipeline is offline.
	s.log.Info().
		Str("tenant_id", tenant.ID).
		Str("reset_token", token).
		Dur("ttl", s.cfg.Security.ResetTokenTTL).
		Msg("password reset token issued")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	key := resetTokenKey(security.HashResetToken(token))

	tenantID, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidResetToken
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.tenants.UpdatePassword(ctx, tenantID, passwordHash); err != nil {
		return err
	}

	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Msg("reset token cleanup failed")
	}
	return nil
}

// EnsureAdmin seeds the bootstrap admin account on first start.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	boot := s.cfg.Bootstrap
	if boot.AdminEmail == "" || boot.AdminPassword == "" {
		s.log.Warn().Msg("no admins exist and no bootstrap admin configured")
		return nil
	}

	passwordHash, err := security.HashPassword(boot.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.Admin{
		ID:           ids.New(),
		Name:         boot.AdminName,
		Email:        strings.ToLower(boot.AdminEmail),
		PasswordHash: passwordHash,
		Role:         models.AdminRoleSuperAdmin,
	}

	if err := s.admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.Info().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("bootstrap admin created")
	return nil
}

func resetTokenKey(hash string) string {
	return "reset:" + hash
}
