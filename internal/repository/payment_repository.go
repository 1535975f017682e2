package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wifiportal/internal/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p models.Payment) error {
	const query = `
		INSERT INTO payments (
			id, tenant_id, type, status, bucket, object_key, file_name,
			content_type, size_bytes, uploaded_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.TenantID,
		p.Type,
		p.Status,
		p.Bucket,
		p.ObjectKey,
		p.FileName,
		p.ContentType,
		p.SizeBytes,
		p.UploadedAt,
	)
	return err
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (models.Payment, error) {
	const query = `
		SELECT id, tenant_id, type, status, bucket, object_key, file_name,
		       content_type, size_bytes, uploaded_at, approved_at, reviewed_by,
		       created_at, updated_at
		FROM payments WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var p models.Payment
	if err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.Type,
		&p.Status,
		&p.Bucket,
		&p.ObjectKey,
		&p.FileName,
		&p.ContentType,
		&p.SizeBytes,
		&p.UploadedAt,
		&p.ApprovedAt,
		&p.ReviewedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	return p, nil
}

// ListAll returns every payment joined with the owning tenant's name and
// room number for the admin review table.
func (r *PaymentRepository) ListAll(ctx context.Context) ([]models.Payment, error) {
	const query = `
		SELECT p.id, p.tenant_id, p.type, p.status, p.bucket, p.object_key, p.file_name,
		       p.content_type, p.size_bytes, p.uploaded_at, p.approved_at, p.reviewed_by,
		       p.created_at, p.updated_at, t.name, t.room_number
		FROM payments p
		JOIN tenants t ON t.id = p.tenant_id
		ORDER BY p.uploaded_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID,
			&p.TenantID,
			&p.Type,
			&p.Status,
			&p.Bucket,
			&p.ObjectKey,
			&p.FileName,
			&p.ContentType,
			&p.SizeBytes,
			&p.UploadedAt,
			&p.ApprovedAt,
			&p.ReviewedBy,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.TenantName,
			&p.TenantRoom,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Payment, error) {
	const query = `
		SELECT id, tenant_id, type, status, bucket, object_key, file_name,
		       content_type, size_bytes, uploaded_at, approved_at, reviewed_by,
		       created_at, updated_at
		FROM payments
		WHERE tenant_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID,
			&p.TenantID,
			&p.Type,
			&p.Status,
			&p.Bucket,
			&p.ObjectKey,
			&p.FileName,
			&p.ContentType,
			&p.SizeBytes,
			&p.UploadedAt,
			&p.ApprovedAt,
			&p.ReviewedBy,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Review transitions a pending payment to approved or rejected. The
// WHERE clause guards the once-only lifecycle: reviewing a payment that
// is no longer pending affects zero rows.
func (r *PaymentRepository) Review(ctx context.Context, id string, status models.PaymentStatus, reviewedBy string) error {
	const query = `
		UPDATE payments
		SET status = $2,
		    reviewed_by = $3,
		    approved_at = CASE WHEN $2 = 'approved' THEN NOW() ELSE approved_at END,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	cmd, err := r.pool.Exec(ctx, query, id, status, reviewedBy)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) DeleteByTenant(ctx context.Context, tenantID string) error {
	const query = `DELETE FROM payments WHERE tenant_id = $1`
	_, err := r.pool.Exec(ctx, query, tenantID)
	return err
}
