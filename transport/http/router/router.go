package router

import (
	_ "bilateral/docs" // swagger spec registration
	"bilateral/internal/handlers/booking"
	"bilateral/internal/handlers/health"
	"bilateral/internal/handlers/notification"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Booking      booking.Handler
	Notification notification.Handler
	Health       health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Notification.Router(router)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
