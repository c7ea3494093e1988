package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timbermagic/timbermagic-api/internal/config"
	"github.com/timbermagic/timbermagic-api/internal/dto"
	"github.com/timbermagic/timbermagic-api/internal/infra/lockout"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *fakeAudit) {
	t.Helper()

	cfg := &config.Config{
		AdminUsername: "tamam",
		AdminPassword: "admin123",
		JWTSecret:     "s3cret",
		JWTExpiry:     time.Hour,
	}
	rec := &fakeAudit{}
	h, err := NewAuthHandler(cfg, lockout.NewMemoryStore(lockout.DefaultPolicy), rec)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth", h.Login)
	return r, rec
}

func TestAuth_Success(t *testing.T) {
	r, rec := newAuthTestRouter(t)

	w := do(r, http.MethodPost, "/auth", map[string]string{"username": "tamam", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.LoginResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotEmpty(t, body.Token)

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(body.Token, claims, func(*jwt.Token) (any, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	assert.Equal(t, "tamam", claims["sub"])
	assert.Equal(t, "admin", claims["role"])

	require.Len(t, rec.events, 1)
	assert.Equal(t, "admin_login", rec.events[0].Action)
}

func TestAuth_InvalidCredentials(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	for _, creds := range []map[string]string{
		{"username": "tamam", "password": "wrong"},
		{"username": "someone", "password": "admin123"},
	} {
		w := do(r, http.MethodPost, "/auth", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"invalid_credentials"}`, w.Body.String())
	}
}

func TestAuth_MalformedBody(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := do(r, http.MethodPost, "/auth", map[string]string{"username": "tamam"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_LocksOutAfterRepeatedFailures(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	for i := 0; i < lockout.DefaultPolicy.MaxFailures; i++ {
		w := do(r, http.MethodPost, "/auth", map[string]string{"username": "tamam", "password": "nope"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := do(r, http.MethodPost, "/auth", map[string]string{"username": "tamam", "password": "admin123"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
