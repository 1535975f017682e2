package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wifiportal/internal/config"
	"wifiportal/internal/models"
	"wifiportal/internal/security"
)

const (
	ContextTenant = "current_tenant"
	ContextAdmin  = "current_admin"
	ContextClaims = "access_claims"
)

type tenantLoader interface {
	GetByID(ctx context.Context, id string) (models.Tenant, error)
}

type adminLoader interface {
	GetByID(ctx context.Context, id string) (models.Admin, error)
}

// TenantAuth guards tenant routes. Blocked tenants are rejected even
// with a valid token, so a block takes effect within one request.
func TenantAuth(cfg *config.AppConfig, tenants tenantLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := extractToken(c, false)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		claims, err := security.ParseAccessToken(tokenStr, cfg.Security.TenantJWTSecret, security.RoleTenant)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		tenant, err := tenants.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "tenant_not_found"})
			return
		}

		if tenant.Status == models.TenantStatusBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "tenant_blocked"})
			return
		}

		c.Set(ContextClaims, *claims)
		c.Set(ContextTenant, tenant)

		c.Next()
	}
}

// AdminAuth guards admin routes with the admin token secret. The token
// is accepted from the Authorization header only.
func AdminAuth(cfg *config.AppConfig, admins adminLoader) gin.HandlerFunc {
	return adminAuth(cfg, admins, false)
}

// AdminProofAuth additionally accepts the token as a `token` query
// parameter. Only the proof viewer is registered with it: that route
// opens in a browser tab that cannot set headers. Everywhere else the
// query form stays rejected so tokens do not end up in access logs.
func AdminProofAuth(cfg *config.AppConfig, admins adminLoader) gin.HandlerFunc {
	return adminAuth(cfg, admins, true)
}

func adminAuth(cfg *config.AppConfig, admins adminLoader, allowQueryToken bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := extractToken(c, allowQueryToken)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		claims, err := security.ParseAccessToken(tokenStr, cfg.Security.AdminJWTSecret, security.RoleAdmin)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		admin, err := admins.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin_not_found"})
			return
		}

		c.Set(ContextClaims, *claims)
		c.Set(ContextAdmin, admin)

		c.Next()
	}
}

func extractToken(c *gin.Context, allowQuery bool) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), true
	}
	if allowQuery {
		if token := c.Query("token"); token != "" {
			return token, true
		}
	}
	return "", false
}
