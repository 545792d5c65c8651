package booking

import (
	"bilateral/infras/otel"
	"bilateral/internal/domains/booking/model/dto"
	"bilateral/internal/domains/booking/service"
	"bilateral/shared/constant"
	"bilateral/shared/validator"
	"bilateral/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/cancel", handler.CancelBooking)
	})
}

// GetBookings lists every slot with its availability.
// @Summary List slots with bookings
// @Description Returns all slots ordered by date and start time. Attendee fields are null for available slots.
// @Tags Booking
// @Produce json
// @Success 200 {array} dto.SlotViewResponse
// @Failure 500 {object} response.Error
// @Router /bookings [get]
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateBooking reserves an available slot.
// @Summary Book a slot
// @Description Books the slot for the attendee. Exactly one of several concurrent requests for the same slot succeeds.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 200 {object} dto.SlotViewResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("slotId", req.SlotID).Msg("booking rejected")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Slot booked")

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking releases a slot for the attendee who booked it.
// @Summary Cancel a booking
// @Description Name and email must equal the stored booking exactly.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CancelBookingRequest true "Cancel Booking Request"
// @Success 200 {object} dto.SlotViewResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/cancel [post]
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	req := dto.CancelBookingRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Cancel(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("slotId", req.SlotID).Msg("cancellation rejected")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking cancelled")

	response.WithJSON(writer, http.StatusOK, res)
}
