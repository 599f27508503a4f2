package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/config"
)

type stubRegistrar struct {
	registered bool
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	s.registered = true
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "revlo-backend", Env: "test", Port: "8080"},
	}
}

func TestRouterSetup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := NewEngine(testConfig(), zap.NewNop())
	registrar := &stubRegistrar{}

	NewRouter(engine).Register(registrar).Setup()
	assert.True(t, registrar.registered)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("X-Tenant-ID", uuid.New().String())
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestRouterAPIVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := NewEngine(testConfig(), zap.NewNop())
	NewRouter(engine, WithAPIVersion("v2")).Register(&stubRegistrar{}).Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/ping", nil)
	req.Header.Set("X-Tenant-ID", uuid.New().String())
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpointSkipsTenantCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := NewEngine(testConfig(), zap.NewNop())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestMissingTenantRejectedOnAPIRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := NewEngine(testConfig(), zap.NewNop())
	NewRouter(engine).Register(&stubRegistrar{}).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
