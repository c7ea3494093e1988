package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_InstrumentAndExpose(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Instrument())
	r.GET("/gallery", func(c *gin.Context) { c.String(http.StatusOK, "[]") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gallery", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `timbermagic_http_requests_total{method="GET",route="/gallery",status="200"} 1`)
	assert.NotContains(t, string(body), `route="/metrics"`)
}
