package handlers

import (
	"context"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/timbermagic/timbermagic-api/internal/config"
	"github.com/timbermagic/timbermagic-api/internal/httpresp"
	"github.com/timbermagic/timbermagic-api/internal/infra/storage"
)

const healthTimeout = 5 * time.Second

type HealthHandler struct {
	db      *gorm.DB
	redis   *redis.Client
	storage storage.Storage
	config  *config.Config
}

// NewHealthHandler accepts a nil redis client when Redis is not configured.
func NewHealthHandler(db *gorm.DB, rdb *redis.Client, store storage.Storage, cfg *config.Config) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb, storage: store, config: cfg}
}

type HealthReport struct {
	FunctionRunning bool   `json:"function_running"`
	DatabaseURLSet  bool   `json:"database_url_set"`
	GoVersion       string `json:"go_version"`
	DBConnection    string `json:"db_connection"`
	Redis           string `json:"redis"`
	Mailer          string `json:"mailer"`
	Storage         string `json:"storage"`
}

// Get always answers 200; failing dependencies are described in the body.
func (h *HealthHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	report := HealthReport{
		FunctionRunning: true,
		DatabaseURLSet:  h.config.DBUrl != "",
		GoVersion:       runtime.Version(),
		DBConnection:    "ok",
		Redis:           "disabled",
		Mailer:          "disabled",
		Storage:         h.storage.Name(),
	}

	var one int
	if err := h.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		report.DBConnection = "failed: " + err.Error()
	}

	if h.redis != nil {
		report.Redis = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			report.Redis = "failed: " + err.Error()
		}
	}

	if h.config.MailerEnabled() {
		report.Mailer = "resend"
	}

	if err := h.storage.Ping(ctx); err != nil {
		report.Storage = h.storage.Name() + " failed: " + err.Error()
	}

	httpresp.OK(c, report)
}
