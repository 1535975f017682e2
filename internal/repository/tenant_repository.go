package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wifiportal/internal/models"
)

var ErrTenantNotFound = errors.New("tenant not found")

const tenantColumns = `
	id, name, room_number, id_number, phone, email, mac_address,
	password_hash, status, wifi_access, expiry_date, created_at, updated_at
`

type TenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

func scanTenant(row pgx.Row) (models.Tenant, error) {
	var t models.Tenant
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.RoomNumber,
		&t.IDNumber,
		&t.Phone,
		&t.Email,
		&t.MACAddress,
		&t.PasswordHash,
		&t.Status,
		&t.WifiAccess,
		&t.ExpiryDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Tenant{}, ErrTenantNotFound
		}
		return models.Tenant{}, err
	}
	return t, nil
}

func (r *TenantRepository) Create(ctx context.Context, t models.Tenant) error {
	const query = `
		INSERT INTO tenants (
			id, name, room_number, id_number, phone, email, mac_address,
			password_hash, status, wifi_access, expiry_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Name,
		t.RoomNumber,
		t.IDNumber,
		t.Phone,
		t.Email,
		t.MACAddress,
		t.PasswordHash,
		t.Status,
		t.WifiAccess,
		t.ExpiryDate,
	)
	return err
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (models.Tenant, error) {
	const query = `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(r.pool.QueryRow(ctx, query, id))
}

// FindByIdentifier resolves a login identifier, which may be an email
// address or a phone number.
func (r *TenantRepository) FindByIdentifier(ctx context.Context, identifier string) (models.Tenant, error) {
	const query = `SELECT ` + tenantColumns + ` FROM tenants WHERE LOWER(email) = LOWER($1) OR phone = $1`
	return scanTenant(r.pool.QueryRow(ctx, query, identifier))
}

// ExistsDuplicate reports whether another tenant already claims the given
// email, phone, ID number or MAC address.
func (r *TenantRepository) ExistsDuplicate(ctx context.Context, email *string, phone, idNumber, mac string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM tenants
			WHERE ($1::text IS NOT NULL AND LOWER(email) = LOWER($1))
			   OR phone = $2
			   OR id_number = $3
			   OR mac_address = $4
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, phone, idNumber, mac).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	const query = `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// ListExpired returns tenants still holding WiFi access past their expiry date.
func (r *TenantRepository) ListExpired(ctx context.Context, now time.Time) ([]models.Tenant, error) {
	const query = `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE wifi_access = TRUE AND expiry_date IS NOT NULL AND expiry_date < $1
	`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *TenantRepository) UpdateAccess(ctx context.Context, id string, status models.TenantStatus, wifiAccess bool, expiry *time.Time) error {
	const query = `
		UPDATE tenants
		SET status = $2,
		    wifi_access = $3,
		    expiry_date = COALESCE($4, expiry_date),
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, status, wifiAccess, expiry)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (r *TenantRepository) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	const query = `UPDATE tenants SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (r *TenantRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tenants WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}
