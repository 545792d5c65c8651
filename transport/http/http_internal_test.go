package http

import (
	"bilateral/config"
	"bilateral/infras/otel/mocks"
	"bilateral/infras/postgres"
	"bilateral/internal/handlers/health"
	"bilateral/shared/constant"
	"bilateral/transport/http/middleware"
	"bilateral/transport/http/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestServer() *HTTP {
	cfg := &config.Config{}
	cfg.DB.Driver = constant.DBDriverMemory
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://bilateral.example"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	otl := mocks.NewOtel()

	r := router.New(router.DomainHandlers{
		Health: health.New(cfg, &postgres.Connection{}),
	})

	return New(cfg, r, middleware.NewAppMiddleware(otl, cfg, nil), &postgres.Connection{}, nil, nil, otl)
}

func TestHTTP_ServeHTTP(t *testing.T) {
	server := newTestServer()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ServerStateReady, server.State())
}

func TestHTTP_RefusesRequestsDuringShutdown(t *testing.T) {
	server := newTestServer()
	server.setup()
	server.setState(ServerStateInGracePeriod)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"SERVER PREPARING TO SHUT DOWN"}`, rec.Body.String())
}

func TestHTTP_CORS(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://bilateral.example")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, "https://bilateral.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTP_UnknownRoute(t *testing.T) {
	server := newTestServer()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
