package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	"github.com/timbermagic/timbermagic-api/internal/config"
	"github.com/timbermagic/timbermagic-api/internal/handlers"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/infra/lockout"
	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
	"github.com/timbermagic/timbermagic-api/internal/infra/payments"
	infraRepo "github.com/timbermagic/timbermagic-api/internal/infra/repository"
	"github.com/timbermagic/timbermagic-api/internal/infra/sms"
	"github.com/timbermagic/timbermagic-api/internal/infra/storage"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
	ucDashboard "github.com/timbermagic/timbermagic-api/internal/usecase/dashboard"
	ucInvoice "github.com/timbermagic/timbermagic-api/internal/usecase/invoice"
	ucRequest "github.com/timbermagic/timbermagic-api/internal/usecase/request"
)

// Deps are the long-lived collaborators built in main.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil when REDIS_URL is unset
	Config *config.Config

	Audit    audit.Recorder
	Lockout  lockout.Store
	Mailer   mailer.Mailer
	SMS      sms.Sender
	Payments payments.LinkProvider
	Storage  storage.Storage
	Domains  ucRequest.EmailDomainChecker // nil disables the check

	Metrics     *middleware.Metrics
	RateLimiter *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.HandleMethodNotAllowed = true
	r.NoMethod(httperr.MethodNotAllowed)
	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "not_found", "Not found")
	})

	r.Use(middleware.RequestLogger())
	r.Use(d.Metrics.Instrument())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	invoiceRepo := infraRepo.NewInvoiceGormRepository(d.DB)
	requestRepo := infraRepo.NewRequestGormRepository(d.DB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	createInvoiceUC := ucInvoice.NewCreateInvoice(invoiceRepo, d.Audit, cfg.Timezone)
	updateInvoiceUC := ucInvoice.NewUpdateInvoice(invoiceRepo, d.Audit)
	sendInvoiceUC := ucInvoice.NewSendInvoice(invoiceRepo, d.Mailer, d.Payments, cfg.AdminEmail, d.Audit)

	notifier := ucRequest.NewNotifier(d.Mailer, d.SMS, cfg.AdminEmail, cfg.AdminPhone)
	createRequestUC := ucRequest.NewCreateRequest(requestRepo, notifier, d.Audit, d.Domains)
	updateRequestStatusUC := ucRequest.NewUpdateRequestStatus(requestRepo, d.Audit)

	dashboardUC := ucDashboard.NewGetDashboardStats(dashboardRepo, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler, err := handlers.NewAuthHandler(cfg, d.Lockout, d.Audit)
	if err != nil {
		return fmt.Errorf("auth handler: %w", err)
	}

	customerHandler := handlers.NewCustomerHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	galleryHandler := handlers.NewGalleryHandler(d.DB, d.Audit)
	requestHandler := handlers.NewRequestHandler(requestRepo, createRequestUC, updateRequestStatusUC)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo, createInvoiceUC, updateInvoiceUC, sendInvoiceUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	uploadHandler := handlers.NewUploadHandler(d.Storage, d.Audit, cfg.UploadMaxBytes)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	healthHandler := handlers.NewHealthHandler(d.DB, d.Redis, d.Storage, cfg)

	admin := middleware.AuthMiddleware(cfg)

	// ------------------------------
	// PUBLIC
	// ------------------------------
	r.GET("/health", healthHandler.Get)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	r.POST("/auth", authHandler.Login)

	r.GET("/services", middleware.OptionalAuthMiddleware(cfg), serviceHandler.Get)
	r.GET("/gallery", galleryHandler.List)
	r.POST("/requests", d.RateLimiter.Handler(), requestHandler.Create)

	// ------------------------------
	// ADMIN
	// ------------------------------
	r.GET("/customers", admin, customerHandler.Get)

	r.POST("/services", admin, serviceHandler.Create)
	r.PUT("/services", admin, serviceHandler.Update)
	r.DELETE("/services", admin, serviceHandler.Delete)

	r.POST("/gallery", admin, galleryHandler.Create)
	r.PUT("/gallery", admin, galleryHandler.Update)
	r.DELETE("/gallery", admin, galleryHandler.Delete)

	r.GET("/requests", admin, requestHandler.List)
	r.PUT("/requests", admin, requestHandler.UpdateStatus)

	r.GET("/invoices", admin, invoiceHandler.Get)
	r.POST("/invoices", admin, invoiceHandler.Create)
	r.PUT("/invoices", admin, invoiceHandler.Update)
	r.POST("/invoices/send", admin, invoiceHandler.Send)

	r.GET("/dashboard", admin, dashboardHandler.Get)
	r.POST("/upload", admin, uploadHandler.Upload)
	r.GET("/audit-logs", admin, auditLogsHandler.List)

	return nil
}
