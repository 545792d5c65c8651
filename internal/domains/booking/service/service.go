package service

import (
	"bilateral/infras/otel"
	"bilateral/internal/domains/booking/model"
	"bilateral/internal/domains/booking/model/dto"
	"bilateral/internal/domains/booking/notifier"
	"bilateral/internal/domains/booking/repository"
	"bilateral/shared/constant"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	List(ctx context.Context) ([]dto.SlotViewResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.SlotViewResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest) (dto.SlotViewResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	notifier notifier.Notifier
	otel     otel.Otel
}

func New(repo repository.Booking, notifier notifier.Notifier, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		notifier: notifier,
		otel:     otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.SlotViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rows, err := s.repo.ListSlotBookings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list slots with bookings")

		return nil, fmt.Errorf("failed to list slots with bookings: %w", err)
	}

	return dto.FromViews(Resolve(rows)), nil
}

// slotView reads one slot with its booking. An id that is not a UUID cannot name a slot.
func (s *serviceImpl) slotView(ctx context.Context, slotID string) (model.SlotView, error) {
	if uuid.Validate(slotID) != nil {
		return model.SlotView{}, model.ErrSlotNotFound
	}

	rows, err := s.repo.GetSlotBookings(ctx, slotID)
	if err != nil {
		log.Error().Err(err).Str("slotId", slotID).Msg("failed to get slot with bookings")

		return model.SlotView{}, fmt.Errorf("failed to get slot with bookings: %w", err)
	}

	view, ok := ResolveOne(rows)
	if !ok {
		return model.SlotView{}, model.ErrSlotNotFound
	}

	return view, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.SlotViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return res, err //nolint:wrapcheck
	}

	scope.SetAttribute(constant.OtelSlotIDAttribute, req.SlotID)

	view, err := s.slotView(ctx, req.SlotID)
	if err != nil {
		return res, err
	}

	if !view.IsAvailable() {
		return res, model.ErrSlotUnavailable
	}

	booking := req.ToModel()

	err = s.repo.Insert(ctx, booking)

	switch {
	case errors.Is(err, model.ErrDuplicateBooking):
		log.Info().Str("slotId", req.SlotID).Msg("lost booking race, slot already taken")

		return res, model.ErrSlotUnavailable
	case errors.Is(err, model.ErrUnknownSlot):
		return res, model.ErrSlotNotFound
	case err != nil:
		log.Error().Err(err).Str("slotId", req.SlotID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.notifier.Notify(ctx, notifier.Booked, req.Attendee(), view.Slot)

	res.FromView(model.SlotView{Slot: view.Slot, Booking: &booking})

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest) (res dto.SlotViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return res, err //nolint:wrapcheck
	}

	scope.SetAttribute(constant.OtelSlotIDAttribute, req.SlotID)

	view, err := s.slotView(ctx, req.SlotID)
	if err != nil {
		return res, err
	}

	booking := view.Booking
	if booking == nil {
		return res, model.ErrNoBookingForSlot
	}

	if strings.TrimSpace(booking.Name) == "" || strings.TrimSpace(booking.Email) == "" {
		log.Error().Str("slotId", req.SlotID).Str("bookingId", booking.ID).Msg("stored booking is missing attendee fields")

		return res, model.ErrBookingDataInvalid
	}

	if !matchesOwner(booking, req.Name, req.Email) {
		return res, model.ErrNotBookingOwner
	}

	err = s.repo.Delete(ctx, booking.ID)

	switch {
	case errors.Is(err, model.ErrBookingNotFound):
		return res, model.ErrNoBookingForSlot
	case err != nil:
		log.Error().Err(err).Str("bookingId", booking.ID).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.notifier.Notify(ctx, notifier.Cancelled, booking.Attendee(), view.Slot)

	res.FromView(model.SlotView{Slot: view.Slot})

	return res, nil
}
