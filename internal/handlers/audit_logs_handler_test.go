package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuditLogs_ListWithFilters(t *testing.T) {
	db, mock := newMockDB(t)

	r := gin.New()
	r.GET("/audit-logs", asAdmin, NewAuditLogsHandler(db).List)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE action = \$1 AND created_at >= \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE action = \$1 AND created_at >= \$2 ORDER BY created_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor", "action", "entity", "entity_id", "metadata", "created_at"}).
			AddRow(7, "tamam", "invoice_sent", "invoice", "abc", []byte(`{"emailed":true}`), time.Now()))

	w := do(r, http.MethodGet, "/audit-logs?action=invoice_sent&from=2026-05-01&limit=500", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"limit":50`)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), `"metadata":{"emailed":true}`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
