package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wifiportal/internal/middleware"
	"wifiportal/internal/models"
	"wifiportal/internal/service"
)

type registerRequest struct {
	Name       string `json:"name" binding:"required"`
	RoomNumber string `json:"roomNumber" binding:"required"`
	IDNumber   string `json:"idNumber" binding:"required,saidnum"`
	Phone      string `json:"phone" binding:"required,saphone"`
	Email      string `json:"email" binding:"omitempty,email"`
	MACAddress string `json:"macAddress" binding:"required,mac"`
	Password   string `json:"password" binding:"required,min=8"`
}

func (h HandlerSet) RegisterTenant(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:       req.Name,
		RoomNumber: req.RoomNumber,
		IDNumber:   req.IDNumber,
		Phone:      req.Phone,
		Email:      req.Email,
		MACAddress: req.MACAddress,
		Password:   req.Password,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrDuplicateTenant) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tenant": toTenantResponse(tenant)})
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, service.ErrTenantBlocked) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  result.Token,
		"tenant": toTenantResponse(result.Tenant),
	})
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"admin": gin.H{
			"id":    result.Admin.ID,
			"name":  result.Admin.Name,
			"email": result.Admin.Email,
			"role":  string(result.Admin.Role),
		},
	})
}

func (h HandlerSet) Me(c *gin.Context) {
	tenant, ok := currentTenant(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, toTenantResponse(tenant))
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Msg("forgot password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	// Always 200: the response must not reveal whether the email exists.
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func currentTenant(c *gin.Context) (models.Tenant, bool) {
	val, exists := c.Get(middleware.ContextTenant)
	if !exists {
		return models.Tenant{}, false
	}
	tenant, ok := val.(models.Tenant)
	return tenant, ok
}

func currentAdmin(c *gin.Context) (models.Admin, bool) {
	val, exists := c.Get(middleware.ContextAdmin)
	if !exists {
		return models.Admin{}, false
	}
	admin, ok := val.(models.Admin)
	return admin, ok
}
