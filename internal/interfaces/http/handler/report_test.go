package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewReportHandler(nil).RegisterRoutes(api)
	return r
}

func TestReportHandlerValidation(t *testing.T) {
	tenantID := uuid.New().String()

	get := func(r *gin.Engine, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Tenant-ID", tenantID)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("balance sheet with malformed as_of", func(t *testing.T) {
		w := get(newReportRouter(), "/api/v1/reports/balance-sheet?as_of=january")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("profit loss without preset or dates", func(t *testing.T) {
		w := get(newReportRouter(), "/api/v1/reports/profit-loss")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("profit loss with malformed dates", func(t *testing.T) {
		w := get(newReportRouter(), "/api/v1/reports/profit-loss?start_date=x&end_date=y")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_INPUT")
	})

	t.Run("profit loss with inverted dates", func(t *testing.T) {
		w := get(newReportRouter(), "/api/v1/reports/profit-loss?start_date=2026-02-01&end_date=2026-01-01")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ledger without dimension", func(t *testing.T) {
		w := get(newReportRouter(), "/api/v1/reports/ledger?start_date=2026-01-01&end_date=2026-01-31")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("category ledger without category", func(t *testing.T) {
		w := get(newReportRouter(), "/api/v1/reports/ledger?dimension=CATEGORY&start_date=2026-01-01&end_date=2026-01-31")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ledger with malformed reference id", func(t *testing.T) {
		w := get(newReportRouter(), "/api/v1/reports/ledger?dimension=ACCOUNT&reference_id=nope&start_date=2026-01-01&end_date=2026-01-31")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing tenant rejected", func(t *testing.T) {
		r := newReportRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/balance-sheet", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_TENANT")
	})
}

func TestParseRange(t *testing.T) {
	t.Run("plain dates inclusive of end day", func(t *testing.T) {
		period, err := parseRange("2026-01-01", "2026-01-31")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), period.Start)
		assert.True(t, period.Contains(time.Date(2026, 1, 31, 18, 30, 0, 0, time.UTC)))
		assert.False(t, period.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("rfc3339 timestamps kept verbatim", func(t *testing.T) {
		period, err := parseRange("2026-01-01T00:00:00Z", "2026-01-31T12:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC), period.End)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := parseRange("2026-02-01", "2026-01-01")
		assert.Error(t, err)
	})
}
