package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	"github.com/timbermagic/timbermagic-api/internal/config"
	"github.com/timbermagic/timbermagic-api/internal/infra/lockout"
	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
	"github.com/timbermagic/timbermagic-api/internal/infra/payments"
	"github.com/timbermagic/timbermagic-api/internal/infra/sms"
	"github.com/timbermagic/timbermagic-api/internal/infra/storage"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
)

type discardAudit struct{}

func (discardAudit) Dispatch(audit.Event) {}

func newTestEngine(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cfg := &config.Config{
		AdminUsername:  "tamam",
		AdminPassword:  "admin123",
		JWTSecret:      "s3cret",
		JWTExpiry:      time.Hour,
		Timezone:       "UTC",
		UploadMaxBytes: 1 << 20,
	}

	r := gin.New()
	require.NoError(t, RegisterRoutes(r, Deps{
		DB:          db,
		Config:      cfg,
		Audit:       discardAudit{},
		Lockout:     lockout.NewMemoryStore(lockout.DefaultPolicy),
		Mailer:      mailer.Noop{},
		SMS:         sms.Noop{},
		Payments:    payments.Noop{},
		Storage:     storage.DataURLStorage{},
		Metrics:     middleware.NewMetrics(),
		RateLimiter: middleware.NewRateLimiter(1, 5),
	}))
	return r, mock
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	r, _ := newTestEngine(t)

	w := serve(r, http.MethodGet, "/auth", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"method_not_allowed"`)

	w = serve(r, http.MethodDelete, "/invoices", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoutes_Preflight(t *testing.T) {
	r, _ := newTestEngine(t)

	w := serve(r, http.MethodOptions, "/invoices", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_AdminEndpointsRequireToken(t *testing.T) {
	r, mock := newTestEngine(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/customers"},
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/requests"},
		{http.MethodPut, "/requests"},
		{http.MethodGet, "/invoices"},
		{http.MethodPost, "/invoices"},
		{http.MethodPost, "/invoices/send"},
		{http.MethodPost, "/gallery"},
		{http.MethodDelete, "/gallery"},
		{http.MethodDelete, "/services"},
		{http.MethodPost, "/upload"},
		{http.MethodGet, "/audit-logs"},
	} {
		w := serve(r, tc.method, tc.path, "{}")
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_LoginThenAdminCall(t *testing.T) {
	r, mock := newTestEngine(t)

	w := serve(r, http.MethodPost, "/auth", `{"username":"tamam","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	token := w.Body.String()
	start := strings.Index(token, `"token":"`) + len(`"token":"`)
	token = token[start : start+strings.Index(token[start:], `"`)]

	req := httptest.NewRequest(http.MethodDelete, "/gallery", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"id_required"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_UnknownPath(t *testing.T) {
	r, _ := newTestEngine(t)

	w := serve(r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
