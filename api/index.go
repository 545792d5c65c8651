package handler

import (
	"bilateral/config"
	"bilateral/di"
	"bilateral/shared/constant"
	"bilateral/shared/logger"
	"errors"
	"net/http"
	"sync"

	transport "bilateral/transport/http"
	"bilateral/transport/http/response"

	"github.com/rs/zerolog/log"
)

// ErrMemoryDriverUnsupported is returned for DB_DRIVER=memory. Every serverless instance
// would hold its own store, so two instances could book the same slot.
var ErrMemoryDriverUnsupported = errors.New("memory store cannot be shared between serverless instances")

var (
	service  *transport.HTTP
	startErr error
	once     sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the first request
// and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if startErr = checkDriver(cfg); startErr != nil {
			log.Error().Err(startErr).Str("dbDriver", cfg.DB.Driver).Msg("Refusing to serve")

			return
		}

		service = di.InitializeService()
	})

	if startErr != nil {
		response.WithUnhealthy(w)

		return
	}

	service.ServeHTTP(w, r)
}

func checkDriver(cfg *config.Config) error {
	if cfg.DB.Driver == constant.DBDriverMemory {
		return ErrMemoryDriverUnsupported
	}

	return nil
}
