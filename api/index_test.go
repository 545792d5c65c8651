package handler

import (
	"bilateral/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDriver(t *testing.T) {
	cfg := &config.Config{}

	cfg.DB.Driver = "memory"
	assert.ErrorIs(t, checkDriver(cfg), ErrMemoryDriverUnsupported)

	cfg.DB.Driver = "postgres"
	assert.NoError(t, checkDriver(cfg))
}

func TestHandler_RefusesMemoryDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")

	for range 2 {
		rec := httptest.NewRecorder()
		Handler(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	}

	assert.Nil(t, service)
}
