package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wifiportal/internal/models"
	"wifiportal/internal/repository"
	"wifiportal/internal/service"
)

func (h HandlerSet) ListTenants(c *gin.Context) {
	tenants, err := h.tenantSv.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]tenantResponse, 0, len(tenants))
	for _, t := range tenants {
		resp = append(resp, toTenantResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) ActivateTenant(c *gin.Context) {
	h.mutateTenant(c, c.Param("id"), h.tenantSv.Activate)
}

func (h HandlerSet) DeactivateTenant(c *gin.Context) {
	h.mutateTenant(c, c.Param("id"), h.tenantSv.Deactivate)
}

type tenantIDRequest struct {
	TenantID string `json:"tenantId" binding:"required"`
}

func (h HandlerSet) BlockTenant(c *gin.Context) {
	var req tenantIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutateTenant(c, req.TenantID, h.tenantSv.Block)
}

func (h HandlerSet) UnblockTenant(c *gin.Context) {
	var req tenantIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutateTenant(c, req.TenantID, h.tenantSv.Unblock)
}

func (h HandlerSet) ApproveTenant(c *gin.Context) {
	h.mutateTenant(c, c.Param("id"), h.tenantSv.Approve)
}

func (h HandlerSet) DeleteTenant(c *gin.Context) {
	if err := h.tenantSv.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) mutateTenant(c *gin.Context, id string, op func(ctx context.Context, id string) (models.Tenant, error)) {
	tenant, err := op(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTenantBlocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenant": toTenantResponse(tenant)})
}
