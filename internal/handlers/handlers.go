package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"wifiportal/internal/config"
	"wifiportal/internal/middleware"
	"wifiportal/internal/queue"
	"wifiportal/internal/repository"
	"wifiportal/internal/service"
	"wifiportal/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	tenantSv *service.TenantService
	payments *service.PaymentService
	contact  *service.ContactService
	db       *pgxpool.Pool
	cache    *redis.Client
	store    *storage.ObjectStore
	tenants  *repository.TenantRepository
	admins   *repository.AdminRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	tenantRepo := repository.NewTenantRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	contactRepo := repository.NewContactRepository(db)
	events := queue.NewPublisher(cache, cfg.Redis.Stream)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     service.NewAuthService(tenantRepo, adminRepo, cache, cfg, log),
		tenantSv: service.NewTenantService(tenantRepo, paymentRepo, store, events, cfg.Access, log),
		payments: service.NewPaymentService(paymentRepo, tenantRepo, store, events, cfg.Access, log),
		contact:  service.NewContactService(contactRepo, events, log),
		db:       db,
		cache:    cache,
		store:    store,
		tenants:  tenantRepo,
		admins:   adminRepo,
	}
}

// Auth exposes the auth service for startup bootstrapping.
func (h HandlerSet) Auth() *service.AuthService {
	return h.auth
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	loginLimit := middleware.LoginRateLimit(h.cache, h.cfg.Security.LoginRateLimit, h.cfg.Security.LoginRateWindow)
	tenantAuth := middleware.TenantAuth(h.cfg, h.tenants)
	adminAuth := middleware.AdminAuth(h.cfg, h.admins)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.RegisterTenant)
		auth.POST("/login", loginLimit, h.Login)
		auth.POST("/admin/login", loginLimit, h.AdminLogin)
		auth.POST("/forgot-password", loginLimit, h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/me", tenantAuth, h.Me)
	}

	tenants := router.Group("/tenants", adminAuth)
	{
		tenants.GET("", h.ListTenants)
		tenants.POST("/activate/:id", h.ActivateTenant)
		tenants.POST("/deactivate/:id", h.DeactivateTenant)
		tenants.POST("/block", h.BlockTenant)
		tenants.POST("/unblock", h.UnblockTenant)
		tenants.POST("/approve/:id", h.ApproveTenant)
		tenants.DELETE("/:id", h.DeleteTenant)
	}

	payments := router.Group("/payments")
	{
		payments.POST("/upload", tenantAuth, h.UploadProof)
		payments.POST("/cash", tenantAuth, h.SubmitCash)
		payments.GET("/status", tenantAuth, h.PaymentStatus)

		payments.GET("/all", adminAuth, h.ListPayments)
		payments.POST("/approve/:id", adminAuth, h.ApprovePayment)
		payments.POST("/reject/:id", adminAuth, h.RejectPayment)

		// Opened in a new tab, so the token may ride in the query string.
		proofAuth := middleware.AdminProofAuth(h.cfg, h.admins)
		payments.GET("/proof/:id", proofAuth, h.ViewProof)
	}

	router.POST("/contact/submit", h.SubmitContact)
}
