package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wifiportal/internal/config"
	"wifiportal/internal/models"
	"wifiportal/internal/repository"
	"wifiportal/internal/security"
)

type stubTenantLoader struct {
	tenant models.Tenant
	err    error
}

func (s stubTenantLoader) GetByID(ctx context.Context, id string) (models.Tenant, error) {
	return s.tenant, s.err
}

type stubAdminLoader struct {
	admin models.Admin
	err   error
}

func (s stubAdminLoader) GetByID(ctx context.Context, id string) (models.Admin, error) {
	return s.admin, s.err
}

func authTestConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			TenantJWTSecret: "tenant-secret",
			AdminJWTSecret:  "admin-secret",
		},
	}
}

func serveGuarded(t *testing.T, guard gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/guarded", guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T, cfg *config.AppConfig) string {
	t.Helper()
	token, err := security.GenerateAccessToken(cfg.Security.AdminJWTSecret, "a1", security.RoleAdmin, "Admin", time.Minute)
	require.NoError(t, err)
	return token
}

func TestTenantAuthAcceptsBearerToken(t *testing.T) {
	cfg := authTestConfig()
	token, err := security.GenerateAccessToken(cfg.Security.TenantJWTSecret, "t1", security.RoleTenant, "Thabo", time.Minute)
	require.NoError(t, err)

	guard := TenantAuth(cfg, stubTenantLoader{tenant: models.Tenant{ID: "t1", Status: models.TenantStatusActive}})
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusOK, serveGuarded(t, guard, req).Code)
}

func TestTenantAuthRejectsBlockedTenant(t *testing.T) {
	cfg := authTestConfig()
	token, err := security.GenerateAccessToken(cfg.Security.TenantJWTSecret, "t1", security.RoleTenant, "Thabo", time.Minute)
	require.NoError(t, err)

	guard := TenantAuth(cfg, stubTenantLoader{tenant: models.Tenant{ID: "t1", Status: models.TenantStatusBlocked}})
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, serveGuarded(t, guard, req).Code)
}

func TestTenantAuthRejectsAdminToken(t *testing.T) {
	cfg := authTestConfig()

	guard := TenantAuth(cfg, stubTenantLoader{tenant: models.Tenant{ID: "t1"}})
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, cfg))

	assert.Equal(t, http.StatusUnauthorized, serveGuarded(t, guard, req).Code)
}

func TestTenantAuthIgnoresQueryToken(t *testing.T) {
	cfg := authTestConfig()
	token, err := security.GenerateAccessToken(cfg.Security.TenantJWTSecret, "t1", security.RoleTenant, "Thabo", time.Minute)
	require.NoError(t, err)

	guard := TenantAuth(cfg, stubTenantLoader{tenant: models.Tenant{ID: "t1", Status: models.TenantStatusActive}})
	req := httptest.NewRequest(http.MethodGet, "/guarded?token="+token, nil)

	assert.Equal(t, http.StatusUnauthorized, serveGuarded(t, guard, req).Code)
}

func TestAdminAuthIgnoresQueryToken(t *testing.T) {
	cfg := authTestConfig()

	guard := AdminAuth(cfg, stubAdminLoader{admin: models.Admin{ID: "a1"}})
	req := httptest.NewRequest(http.MethodGet, "/guarded?token="+adminToken(t, cfg), nil)

	assert.Equal(t, http.StatusUnauthorized, serveGuarded(t, guard, req).Code)
}

func TestAdminProofAuthAcceptsQueryToken(t *testing.T) {
	cfg := authTestConfig()

	guard := AdminProofAuth(cfg, stubAdminLoader{admin: models.Admin{ID: "a1"}})
	req := httptest.NewRequest(http.MethodGet, "/guarded?token="+adminToken(t, cfg), nil)

	assert.Equal(t, http.StatusOK, serveGuarded(t, guard, req).Code)
}

func TestAdminAuthUnknownAdmin(t *testing.T) {
	cfg := authTestConfig()

	guard := AdminAuth(cfg, stubAdminLoader{err: repository.ErrAdminNotFound})
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, cfg))

	assert.Equal(t, http.StatusUnauthorized, serveGuarded(t, guard, req).Code)
}
