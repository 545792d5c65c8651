package notification

import (
	"bilateral/infras/otel"
	"bilateral/internal/domains/notification/service"
	"bilateral/shared/constant"
	"bilateral/transport/http/middleware"
	"bilateral/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service    service.Notification
	middleware middleware.AppMiddleware
	otel       otel.Otel
}

func New(service service.Notification, middleware middleware.AppMiddleware, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.With(handler.middleware.APIKey).Post("/test-email", handler.SendTestEmail)
}

// SendTestEmail mails a sample booking notice to the organizer.
// @Summary Send a test e-mail
// @Description Sends a sample booking notice synchronously and reports the mail setup.
// @Tags Notification
// @Produce json
// @Success 200 {object} dto.TestEmailResponse
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} dto.TestEmailResponse
// @Router /test-email [post]
// @Security ApiKeyAuth
func (handler *Handler) SendTestEmail(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendTestEmail")
	defer scope.End()

	res, err := handler.service.SendTestEmail(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithJSON(writer, http.StatusInternalServerError, res)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
