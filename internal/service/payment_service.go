package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/rs/zerolog"

	"wifiportal/internal/config"
	"wifiportal/internal/ids"
	"wifiportal/internal/models"
	"wifiportal/internal/sniff"
)

var (
	ErrAlreadyReviewed = errors.New("payment already reviewed")
	ErrProofTooLarge   = errors.New("proof file too large")
	ErrEmptyProof      = errors.New("empty proof file")
	ErrNoProofFile     = errors.New("payment has no proof file")
)

type PaymentService struct {
	payments paymentStore
	tenants  tenantStore
	proofs   proofStore
	events   eventPublisher
	access   config.AccessConfig
	log      zerolog.Logger
}

func NewPaymentService(payments paymentStore, tenants tenantStore, proofs proofStore, events eventPublisher, access config.AccessConfig, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		tenants:  tenants,
		proofs:   proofs,
		events:   events,
		access:   access,
		log:      log,
	}
}

type UploadProofInput struct {
	Tenant models.Tenant
	File   multipart.File
	Header *multipart.FileHeader
}

// UploadProof stores a proof-of-payment file and records a pending
// payment. The file is accepted by sniffed content, not by the declared
// Content-Type, and both must agree when a type is declared.
func (s *PaymentService) UploadProof(ctx context.Context, input UploadProofInput) (models.Payment, error) {
	if input.File == nil || input.Header == nil {
		return models.Payment{}, errors.New("invalid file payload")
	}
	if input.Header.Size > s.access.MaxProofBytes {
		return models.Payment{}, ErrProofTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.File, s.access.MaxProofBytes+1))
	if err != nil {
		return models.Payment{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return models.Payment{}, ErrEmptyProof
	}
	if int64(len(data)) > s.access.MaxProofBytes {
		return models.Payment{}, ErrProofTooLarge
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniff.DetectHead(head)
	if err != nil {
		return models.Payment{}, fmt.Errorf("detect type: %w", err)
	}

	declared := sniff.MimeTypeFromHTTP(http.Header(input.Header.Header))
	if declared != "" && declared != result.MIME {
		return models.Payment{}, fmt.Errorf("content type mismatch: declared %s, actual %s", declared, result.MIME)
	}

	paymentID := ids.New()
	objectKey := buildProofKey(paymentID, string(result.Type))

	if err := s.proofs.PutProof(ctx, objectKey, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return models.Payment{}, err
	}

	payment := models.Payment{
		ID:          paymentID,
		TenantID:    input.Tenant.ID,
		Type:        models.PaymentTypePOP,
		Status:      models.PaymentStatusPending,
		Bucket:      s.proofs.Bucket(),
		ObjectKey:   objectKey,
		FileName:    input.Header.Filename,
		ContentType: result.MIME,
		SizeBytes:   int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return models.Payment{}, fmt.Errorf("save payment: %w", err)
	}

	s.log.Info().
		Str("payment_id", payment.ID).
		Str("tenant_id", input.Tenant.ID).
		Int64("size", payment.SizeBytes).
		Msg("payment proof uploaded")
	return payment, nil
}

// SubmitCash records a cash payment awaiting manual verification.
func (s *PaymentService) SubmitCash(ctx context.Context, tenant models.Tenant) (models.Payment, error) {
	payment := models.Payment{
		ID:         ids.New(),
		TenantID:   tenant.ID,
		Type:       models.PaymentTypeCash,
		Status:     models.PaymentStatusPending,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (s *PaymentService) ListAll(ctx context.Context) ([]models.Payment, error) {
	return s.payments.ListAll(ctx)
}

func (s *PaymentService) StatusFor(ctx context.Context, tenantID string) ([]models.Payment, error) {
	return s.payments.ListByTenant(ctx, tenantID)
}

// Approve marks a pending payment approved and grants the tenant WiFi
// access for a full grant period. Blocked tenants must be unblocked
// before their payments can be approved.
func (s *PaymentService) Approve(ctx context.Context, paymentID, adminID string) (models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if payment.Status != models.PaymentStatusPending {
		return models.Payment{}, ErrAlreadyReviewed
	}

	tenant, err := s.tenants.GetByID(ctx, payment.TenantID)
	if err != nil {
		return models.Payment{}, err
	}
	if tenant.Status == models.TenantStatusBlocked {
		return models.Payment{}, ErrTenantBlocked
	}

	if err := s.payments.Review(ctx, paymentID, models.PaymentStatusApproved, adminID); err != nil {
		return models.Payment{}, err
	}

	expiry := grantExpiry(tenant.ExpiryDate, s.access.GrantPeriod)
	if err := s.tenants.UpdateAccess(ctx, tenant.ID, models.TenantStatusActive, true, &expiry); err != nil {
		return models.Payment{}, fmt.Errorf("grant access: %w", err)
	}

	if err := s.events.PublishWifiSync(ctx, tenant.ID, tenant.MACAddress, true); err != nil {
		s.log.Warn().Err(err).Str("tenant_id", tenant.ID).Msg("wifi sync enqueue failed")
	}

	s.log.Info().
		Str("payment_id", paymentID).
		Str("tenant_id", tenant.ID).
		Time("expiry", expiry).
		Msg("payment approved")
	return s.payments.GetByID(ctx, paymentID)
}

func (s *PaymentService) Reject(ctx context.Context, paymentID, adminID string) (models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if payment.Status != models.PaymentStatusPending {
		return models.Payment{}, ErrAlreadyReviewed
	}

	if err := s.payments.Review(ctx, paymentID, models.PaymentStatusRejected, adminID); err != nil {
		return models.Payment{}, err
	}
	return s.payments.GetByID(ctx, paymentID)
}

type ProofFile struct {
	Reader      io.ReadCloser
	FileName    string
	ContentType string
}

// Proof opens the stored proof object for streaming to the reviewer.
func (s *PaymentService) Proof(ctx context.Context, paymentID string) (ProofFile, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return ProofFile{}, err
	}
	if payment.ObjectKey == "" {
		return ProofFile{}, ErrNoProofFile
	}

	reader, err := s.proofs.GetProof(ctx, payment.ObjectKey)
	if err != nil {
		return ProofFile{}, err
	}

	return ProofFile{
		Reader:      reader,
		FileName:    payment.FileName,
		ContentType: payment.ContentType,
	}, nil
}

func buildProofKey(paymentID string, ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", paymentID, ext))
}
