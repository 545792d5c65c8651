package health

import (
	"bilateral/config"
	"bilateral/infras/postgres"
	"bilateral/shared/constant"
	"bilateral/transport/http/response"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	cfg *config.Config
	db  *postgres.Connection
}

func New(cfg *config.Config, db *postgres.Connection) Handler {
	return Handler{
		cfg: cfg,
		db:  db,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports whether the store is reachable.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, request *http.Request) {
	if handler.cfg.DB.Driver == constant.DBDriverPostgres {
		ctx, cancel := context.WithTimeout(request.Context(), pingTimeout)
		defer cancel()

		if err := handler.db.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("health check failed")

			response.WithUnhealthy(writer)

			return
		}
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}
