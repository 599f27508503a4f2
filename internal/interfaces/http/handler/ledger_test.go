package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// newLedgerRouter wires the ledger routes without a backing service.
// Only request validation paths are exercised here; full request flows
// are covered by the application layer tests.
func newLedgerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewLedgerHandler(nil).RegisterRoutes(api)
	return r
}

func TestLedgerHandlerValidation(t *testing.T) {
	tenantID := uuid.New().String()

	t.Run("missing tenant rejected", func(t *testing.T) {
		r := newLedgerRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_TENANT")
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		r := newLedgerRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-ID", tenantID)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_JSON")
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		r := newLedgerRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{"note":"no ids"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-ID", tenantID)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed path id rejected", func(t *testing.T) {
		r := newLedgerRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/not-a-uuid/reverse", nil)
		req.Header.Set("X-Tenant-ID", tenantID)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_BAD_REQUEST")
	})

	t.Run("settle with malformed body rejected", func(t *testing.T) {
		r := newLedgerRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses/"+uuid.New().String()+"/settle", strings.NewReader("[]"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-ID", tenantID)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
