package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"wifiportal/internal/repository"
	"wifiportal/internal/service"
)

func (h HandlerSet) UploadProof(c *gin.Context) {
	tenant, ok := currentTenant(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("proofOfPayment")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof_file_required"})
		return
	}
	defer file.Close()

	payment, err := h.payments.UploadProof(c.Request.Context(), service.UploadProofInput{
		Tenant: tenant,
		File:   file,
		Header: header,
	})
	if err != nil {
		h.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("proof upload failed")
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrProofTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": toPaymentResponse(payment)})
}

func (h HandlerSet) SubmitCash(c *gin.Context) {
	tenant, ok := currentTenant(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	payment, err := h.payments.SubmitCash(c.Request.Context(), tenant)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": toPaymentResponse(payment)})
}

func (h HandlerSet) PaymentStatus(c *gin.Context) {
	tenant, ok := currentTenant(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	payments, err := h.payments.StatusFor(c.Request.Context(), tenant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func (h HandlerSet) ListPayments(c *gin.Context) {
	payments, err := h.payments.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func (h HandlerSet) ApprovePayment(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	payment, err := h.payments.Approve(c.Request.Context(), c.Param("id"), admin.ID)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": toPaymentResponse(payment)})
}

func (h HandlerSet) RejectPayment(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	payment, err := h.payments.Reject(c.Request.Context(), c.Param("id"), admin.ID)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": toPaymentResponse(payment)})
}

// ViewProof streams the stored proof file. The admin token arrives as a
// query parameter here because the dashboard opens proofs in a new tab.
func (h HandlerSet) ViewProof(c *gin.Context) {
	proof, err := h.payments.Proof(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNoProofFile):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	defer proof.Reader.Close()

	c.Header("Content-Type", proof.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", proof.FileName))
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, proof.Reader); err != nil {
		h.log.Error().Err(err).Str("payment_id", c.Param("id")).Msg("proof stream failed")
	}
}

func (h HandlerSet) reviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPaymentNotFound), errors.Is(err, repository.ErrTenantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTenantBlocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
