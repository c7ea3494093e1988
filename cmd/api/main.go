package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	"github.com/timbermagic/timbermagic-api/internal/config"
	dbpkg "github.com/timbermagic/timbermagic-api/internal/db"
	"github.com/timbermagic/timbermagic-api/internal/infra/lockout"
	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
	"github.com/timbermagic/timbermagic-api/internal/infra/payments"
	infraRepo "github.com/timbermagic/timbermagic-api/internal/infra/repository"
	"github.com/timbermagic/timbermagic-api/internal/infra/sms"
	"github.com/timbermagic/timbermagic-api/internal/infra/storage"
	"github.com/timbermagic/timbermagic-api/internal/logging"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
	"github.com/timbermagic/timbermagic-api/internal/routes"
	"github.com/timbermagic/timbermagic-api/internal/scheduler"
	ucRequest "github.com/timbermagic/timbermagic-api/internal/usecase/request"
	"github.com/timbermagic/timbermagic-api/internal/validators"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// INFRA
	// ======================================================
	var (
		rdb          *redis.Client
		lockoutStore lockout.Store = lockout.NewMemoryStore(lockout.DefaultPolicy)
	)
	if cfg.RedisURL != "" {
		client, err := lockout.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, using in-memory login lockout")
		} else {
			rdb = client
			defer rdb.Close()
			lockoutStore = lockout.NewRedisStore(rdb, lockout.DefaultPolicy)
		}
	}

	mail := mailer.New(cfg.ResendAPIKey, cfg.MailFrom)

	var store storage.Storage = storage.DataURLStorage{}
	if cfg.StorageEnabled() {
		store = storage.NewS3Storage(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	}

	var text sms.Sender = sms.Noop{}
	if cfg.SMSEnabled() {
		text = sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	}

	var pay payments.LinkProvider = payments.Noop{}
	if cfg.PaymentsEnabled() {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoAccessToken, cfg.PaymentCurrency)
		if err != nil {
			logrus.WithError(err).Warn("payment links disabled")
		} else {
			pay = mp
		}
	}

	var domains ucRequest.EmailDomainChecker
	if cfg.ValidateEmailDomain {
		domains = validators.NewDomainChecker(nil)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanup(time.Minute, ctx.Done())

	logrus.WithFields(logrus.Fields{
		"mailer":   cfg.MailerEnabled(),
		"storage":  store.Name(),
		"sms":      cfg.SMSEnabled(),
		"payments": cfg.PaymentsEnabled(),
		"redis":    rdb != nil,
	}).Info("integrations configured")

	// ======================================================
	// SCHEDULER
	// ======================================================
	jobs := scheduler.New(cfg.Timezone)
	digest := scheduler.NewOverdueDigest(infraRepo.NewInvoiceGormRepository(db), mail, cfg.AdminEmail, cfg.Timezone)
	if err := jobs.Add("overdue_digest", cfg.OverdueDigestCron, digest.Run); err != nil {
		logrus.WithError(err).Fatal("invalid OVERDUE_DIGEST_CRON")
	}
	jobs.Start()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Redis:       rdb,
		Config:      cfg,
		Audit:       auditDispatcher,
		Lockout:     lockoutStore,
		Mailer:      mail,
		SMS:         text,
		Payments:    pay,
		Storage:     store,
		Domains:     domains,
		Metrics:     middleware.NewMetrics(),
		RateLimiter: limiter,
	}); err != nil {
		logrus.WithError(err).Fatal("failed to register routes")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("http shutdown")
	}
	jobs.Stop(shutdownCtx)
}
