package model

import (
	slotModel "bilateral/internal/domains/slot/model"
	"bilateral/shared/model"
	"database/sql"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID      = "id"
	FieldSlotID  = "slot_id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCountry = "country"

	IndexSlotUnique = "bookings_slot_id_unique"
)

// Booking is the only witness that a slot is taken. Bookings are created and deleted,
// never updated. Country is NULL for placeholder bookings.
type Booking struct {
	ID      string         `db:"id"`
	SlotID  string         `db:"slot_id"`
	Name    string         `db:"name"`
	Email   string         `db:"email"`
	Country sql.NullString `db:"country"`
	model.Metadata
}

func (b Booking) Attendee() Attendee {
	return Attendee{
		Name:    b.Name,
		Email:   b.Email,
		Country: b.Country.String,
	}
}

// Attendee is the identity attached to a booking.
type Attendee struct {
	Name    string
	Email   string
	Country string
}

// SlotBooking is one row of slots LEFT JOIN bookings. Booking columns are NULL for
// available slots.
type SlotBooking struct {
	slotModel.Slot
	BookingID      sql.NullString `db:"booking_id"      table:"bookings" column:"id"`
	BookingName    sql.NullString `db:"booking_name"    table:"bookings" column:"name"`
	BookingEmail   sql.NullString `db:"booking_email"   table:"bookings" column:"email"`
	BookingCountry sql.NullString `db:"booking_country" table:"bookings" column:"country"`
	BookedAt       sql.NullTime   `db:"booked_at"       table:"bookings" column:"created_at"`
}

func (SlotBooking) GetJoinQuery() string {
	return "LEFT JOIN bookings ON bookings.slot_id = slots.id"
}

// Booking returns the joined booking, or nil when the slot is available.
func (r SlotBooking) Booking() *Booking {
	if !r.BookingID.Valid {
		return nil
	}

	var bookedAt time.Time
	if r.BookedAt.Valid {
		bookedAt = r.BookedAt.Time
	}

	return &Booking{
		ID:       r.BookingID.String,
		SlotID:   r.ID,
		Name:     r.BookingName.String,
		Email:    r.BookingEmail.String,
		Country:  r.BookingCountry,
		Metadata: model.Metadata{CreatedAt: bookedAt},
	}
}

// SlotView is a slot merged with its current booking. It is derived on every read.
type SlotView struct {
	Slot    slotModel.Slot
	Booking *Booking
}

func (v SlotView) IsAvailable() bool {
	return v.Booking == nil
}
