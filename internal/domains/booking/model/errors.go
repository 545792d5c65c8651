package model

import (
	"bilateral/shared/failure"
	"errors"
)

var (
	ErrMissingFields      = failure.BadRequestFromString("Missing required fields")
	ErrInvalidEmail       = failure.BadRequestFromString("Invalid email address")
	ErrSlotNotFound       = failure.NotFound("Slot not found")
	ErrNoBookingForSlot   = failure.NotFound("No booking found for this slot")
	ErrSlotUnavailable    = failure.Conflict("Slot is no longer available")
	ErrNotBookingOwner    = failure.Unauthorized("Name and email do not match the booking details")
	ErrBookingDataInvalid = failure.Internal("Booking data is invalid")
)

// Store level outcomes, translated by the service.
var (
	ErrDuplicateBooking = errors.New("slot already has a booking")
	ErrUnknownSlot      = errors.New("booking references an unknown slot")
	ErrBookingNotFound  = errors.New("booking does not exist")
)
