package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	"github.com/timbermagic/timbermagic-api/internal/config"
	"github.com/timbermagic/timbermagic-api/internal/dto"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/infra/lockout"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
)

type AuthHandler struct {
	config       *config.Config
	passwordHash []byte
	lockout      lockout.Store
	audit        audit.Recorder
	now          func() time.Time
}

// NewAuthHandler hashes the configured admin password once at start-up.
func NewAuthHandler(cfg *config.Config, store lockout.Store, rec audit.Recorder) (*AuthHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &AuthHandler{
		config:       cfg,
		passwordHash: hash,
		lockout:      store,
		audit:        rec,
		now:          time.Now,
	}, nil
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	ip := c.ClientIP()
	log := logrus.WithField("ip", ip)

	until, err := h.lockout.LockedUntil(ctx, ip)
	if err != nil {
		log.WithError(err).Warn("lockout lookup failed")
	}
	if now := h.now(); until.After(now) {
		c.Header("Retry-After", strconv.Itoa(int(until.Sub(now).Seconds())+1))
		httperr.TooManyRequests(c, "rate_limited", "Too many failed attempts, try again later")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.config.AdminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password))

	if !userOK || passErr != nil {
		if err := h.lockout.RecordFailure(ctx, ip); err != nil {
			log.WithError(err).Warn("failed to record login failure")
		}
		log.Warn("admin login rejected")
		c.JSON(http.StatusUnauthorized, dto.LoginResponseDTO{Success: false, Error: "invalid_credentials"})
		return
	}

	if err := h.lockout.Clear(ctx, ip); err != nil {
		log.WithError(err).Warn("failed to clear login failures")
	}

	token, err := middleware.SignAdminToken(h.config.JWTSecret, h.config.AdminUsername, h.config.JWTExpiry, h.now())
	if err != nil {
		respondError(c, err, "sign token")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:  h.config.AdminUsername,
		Action: "admin_login",
		Entity: "auth",
		Metadata: map[string]any{
			"ip": ip,
		},
	})

	c.JSON(http.StatusOK, dto.LoginResponseDTO{Success: true, Token: token})
}
