package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wifiportal/internal/models"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func proofInput(tenant models.Tenant, name, contentType string, data []byte) UploadProofInput {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(data)),
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return UploadProofInput{
		Tenant: tenant,
		File:   memFile{bytes.NewReader(data)},
		Header: header,
	}
}

var pngData = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}

func newPaymentServiceForTest(payments *fakePaymentStore, tenants *fakeTenantStore, proofs *fakeProofStore, events *fakePublisher) *PaymentService {
	return NewPaymentService(payments, tenants, proofs, events, testAccess, zerolog.Nop())
}

func TestUploadProofStoresFileAndPendingPayment(t *testing.T) {
	tenant := inactiveTenant("t1")
	payments := newFakePaymentStore()
	proofs := newFakeProofStore()
	svc := newPaymentServiceForTest(payments, newFakeTenantStore(tenant), proofs, &fakePublisher{})

	payment, err := svc.UploadProof(context.Background(), proofInput(tenant, "receipt.png", "image/png", pngData))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, models.PaymentTypePOP, payment.Type)
	assert.Equal(t, "receipt.png", payment.FileName)
	assert.Equal(t, "image/png", payment.ContentType)
	assert.Equal(t, int64(len(pngData)), payment.SizeBytes)
	assert.Equal(t, "proofs", payment.Bucket)

	stored, ok := proofs.objects[payment.ObjectKey]
	require.True(t, ok)
	assert.Equal(t, pngData, stored)

	saved, err := payments.GetByID(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, "t1", saved.TenantID)
}

func TestUploadProofSniffsContentNotExtension(t *testing.T) {
	tenant := inactiveTenant("t1")
	svc := newPaymentServiceForTest(newFakePaymentStore(), newFakeTenantStore(tenant), newFakeProofStore(), &fakePublisher{})

	// A renamed text file is rejected regardless of its name.
	_, err := svc.UploadProof(context.Background(), proofInput(tenant, "receipt.png", "", []byte("not an image")))
	assert.Error(t, err)
}

func TestUploadProofDeclaredTypeMustMatch(t *testing.T) {
	tenant := inactiveTenant("t1")
	svc := newPaymentServiceForTest(newFakePaymentStore(), newFakeTenantStore(tenant), newFakeProofStore(), &fakePublisher{})

	_, err := svc.UploadProof(context.Background(), proofInput(tenant, "receipt.pdf", "application/pdf", pngData))
	assert.Error(t, err)
}

func TestUploadProofRejectsOversizeAndEmpty(t *testing.T) {
	tenant := inactiveTenant("t1")
	svc := newPaymentServiceForTest(newFakePaymentStore(), newFakeTenantStore(tenant), newFakeProofStore(), &fakePublisher{})

	big := make([]byte, testAccess.MaxProofBytes+1)
	copy(big, pngData)
	_, err := svc.UploadProof(context.Background(), proofInput(tenant, "big.png", "image/png", big))
	assert.ErrorIs(t, err, ErrProofTooLarge)

	_, err = svc.UploadProof(context.Background(), proofInput(tenant, "empty.png", "", nil))
	assert.ErrorIs(t, err, ErrEmptyProof)
}

func TestApproveGrantsAccessAndSyncs(t *testing.T) {
	tenant := inactiveTenant("t1")
	tenants := newFakeTenantStore(tenant)
	payments := newFakePaymentStore(models.Payment{
		ID:       "p1",
		TenantID: "t1",
		Type:     models.PaymentTypePOP,
		Status:   models.PaymentStatusPending,
	})
	events := &fakePublisher{}
	svc := newPaymentServiceForTest(payments, tenants, newFakeProofStore(), events)

	payment, err := svc.Approve(context.Background(), "p1", "admin-1")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusApproved, payment.Status)
	require.NotNil(t, payment.ReviewedBy)
	assert.Equal(t, "admin-1", *payment.ReviewedBy)
	assert.NotNil(t, payment.ApprovedAt)

	got, err := tenants.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, got.WifiAccess)
	assert.Equal(t, models.TenantStatusActive, got.Status)
	require.NotNil(t, got.ExpiryDate)
	assert.WithinDuration(t, time.Now().Add(testAccess.GrantPeriod), *got.ExpiryDate, time.Minute)

	require.Len(t, events.syncs, 1)
	assert.True(t, events.syncs[0].Allow)
}

func TestApproveIsSingleUse(t *testing.T) {
	tenants := newFakeTenantStore(inactiveTenant("t1"))
	payments := newFakePaymentStore(models.Payment{
		ID:       "p1",
		TenantID: "t1",
		Status:   models.PaymentStatusPending,
	})
	svc := newPaymentServiceForTest(payments, tenants, newFakeProofStore(), &fakePublisher{})

	_, err := svc.Approve(context.Background(), "p1", "admin-1")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), "p1", "admin-2")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	_, err = svc.Reject(context.Background(), "p1", "admin-2")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestApproveBlockedTenantFails(t *testing.T) {
	tenant := inactiveTenant("t1")
	tenant.Status = models.TenantStatusBlocked

	tenants := newFakeTenantStore(tenant)
	payments := newFakePaymentStore(models.Payment{
		ID:       "p1",
		TenantID: "t1",
		Status:   models.PaymentStatusPending,
	})
	events := &fakePublisher{}
	svc := newPaymentServiceForTest(payments, tenants, newFakeProofStore(), events)

	_, err := svc.Approve(context.Background(), "p1", "admin-1")
	assert.ErrorIs(t, err, ErrTenantBlocked)

	// The payment stays pending and no access change was queued.
	p, err := payments.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, p.Status)
	assert.Empty(t, events.syncs)
}

func TestRejectDoesNotTouchAccess(t *testing.T) {
	tenants := newFakeTenantStore(inactiveTenant("t1"))
	payments := newFakePaymentStore(models.Payment{
		ID:       "p1",
		TenantID: "t1",
		Status:   models.PaymentStatusPending,
	})
	events := &fakePublisher{}
	svc := newPaymentServiceForTest(payments, tenants, newFakeProofStore(), events)

	payment, err := svc.Reject(context.Background(), "p1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRejected, payment.Status)
	assert.Nil(t, payment.ApprovedAt)

	got, err := tenants.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.False(t, got.WifiAccess)
	assert.Empty(t, events.syncs)
}

func TestProofStreamsStoredObject(t *testing.T) {
	proofs := newFakeProofStore()
	require.NoError(t, proofs.PutProof(context.Background(), "2026/08/01/p1.png", bytes.NewReader(pngData), int64(len(pngData)), "image/png"))

	payments := newFakePaymentStore(models.Payment{
		ID:          "p1",
		TenantID:    "t1",
		ObjectKey:   "2026/08/01/p1.png",
		FileName:    "receipt.png",
		ContentType: "image/png",
	})
	svc := newPaymentServiceForTest(payments, newFakeTenantStore(), proofs, &fakePublisher{})

	proof, err := svc.Proof(context.Background(), "p1")
	require.NoError(t, err)
	defer proof.Reader.Close()

	assert.Equal(t, "receipt.png", proof.FileName)
	assert.Equal(t, "image/png", proof.ContentType)
}

func TestProofWithoutFileFails(t *testing.T) {
	payments := newFakePaymentStore(models.Payment{ID: "p1", TenantID: "t1", Type: models.PaymentTypeCash})
	svc := newPaymentServiceForTest(payments, newFakeTenantStore(), newFakeProofStore(), &fakePublisher{})

	_, err := svc.Proof(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrNoProofFile)
}

func TestSubmitCash(t *testing.T) {
	payments := newFakePaymentStore()
	svc := newPaymentServiceForTest(payments, newFakeTenantStore(), newFakeProofStore(), &fakePublisher{})

	payment, err := svc.SubmitCash(context.Background(), inactiveTenant("t1"))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentTypeCash, payment.Type)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Empty(t, payment.ObjectKey)
}
