package dto

import (
	"bilateral/internal/domains/booking/model"
	slotModel "bilateral/internal/domains/slot/model"
	"bilateral/shared"
	"bilateral/shared/timezone"
	"bilateral/shared/validator"
	"strings"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID  string `json:"slotId"  validate:"required"`
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Country string `json:"country" validate:"required,max=100"`
}

func (r *CreateBookingRequest) Sanitize() {
	r.SlotID = strings.TrimSpace(r.SlotID)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Country = strings.TrimSpace(r.Country)
}

// Validate trims the request and reports the first problem as a booking error.
func (r *CreateBookingRequest) Validate() error {
	err := validator.ValidateStruct(r)
	if err == nil {
		return nil
	}

	if anyBlank(r.SlotID, r.Name, r.Email, r.Country) {
		return model.ErrMissingFields
	}

	if validator.ValidateVar(r.Email, "email") != nil {
		return model.ErrInvalidEmail
	}

	return err //nolint:wrapcheck
}

func (r *CreateBookingRequest) ToModel() model.Booking {
	booking := model.Booking{
		ID:      uuid.NewString(),
		SlotID:  r.SlotID,
		Name:    r.Name,
		Email:   r.Email,
		Country: shared.StringToNull(r.Country),
	}
	booking.CreatedAt = timezone.Now()

	return booking
}

func (r *CreateBookingRequest) Attendee() model.Attendee {
	return model.Attendee{Name: r.Name, Email: r.Email, Country: r.Country}
}

type CancelBookingRequest struct {
	SlotID string `json:"slotId" validate:"required"`
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required"`
}

// Sanitize trims like CreateBookingRequest.Sanitize, so the name and email compared on
// cancel are in the same form they were stored in.
func (r *CancelBookingRequest) Sanitize() {
	r.SlotID = strings.TrimSpace(r.SlotID)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

func (r *CancelBookingRequest) Validate() error {
	r.Sanitize()

	if anyBlank(r.SlotID, r.Name, r.Email) {
		return model.ErrMissingFields
	}

	return nil
}

func anyBlank(values ...string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return true
		}
	}

	return false
}

// SlotViewResponse is the public shape of a slot. Attendee fields and booking_id are
// null while the slot is available.
type SlotViewResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	IsAvailable bool    `json:"is_available"`
	Country     *string `json:"country"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	BookingID   *string `json:"booking_id"`
}

func (r *SlotViewResponse) FromView(view model.SlotView) {
	r.fromSlot(view.Slot)
	r.IsAvailable = view.IsAvailable()

	if view.Booking == nil {
		return
	}

	booking := view.Booking
	name := booking.Name
	email := booking.Email
	id := booking.ID

	r.Name = &name
	r.Email = &email
	r.BookingID = &id
	r.Country = shared.NullStringPtr(booking.Country)
}

func (r *SlotViewResponse) fromSlot(slot slotModel.Slot) {
	r.ID = slot.ID
	r.Date = slot.DateString()
	r.StartTime = slot.StartTime
	r.EndTime = slot.EndTime
}

func FromViews(views []model.SlotView) []SlotViewResponse {
	res := make([]SlotViewResponse, len(views))

	for idx, view := range views {
		res[idx].FromView(view)
	}

	return res
}
