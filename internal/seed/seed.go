package seed

import (
	"bilateral/infras/otel"
	bookingModel "bilateral/internal/domains/booking/model"
	bookingRepo "bilateral/internal/domains/booking/repository"
	slotModel "bilateral/internal/domains/slot/model"
	slotRepo "bilateral/internal/domains/slot/repository"
	"bilateral/shared/constant"
	"bilateral/shared/timezone"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	reservedName  = "Reserved"
	reservedEmail = "reserved@eu.delegation"
	reservedFrom  = "Fiji"
)

type window struct {
	date  string
	start string
	end   string
}

var schedule = []window{
	{"2025-01-26", "14:00", "15:00"},
	{"2025-01-26", "15:30", "16:30"},
	{"2025-01-27", "14:00", "15:00"},
	{"2025-01-27", "15:00", "16:00"},
	{"2025-01-28", "09:00", "10:00"},
	{"2025-01-28", "10:00", "11:00"},
	{"2025-01-28", "11:00", "12:00"},
	{"2025-01-28", "12:00", "13:00"},
	{"2025-01-28", "14:00", "15:00"},
	{"2025-01-28", "15:00", "16:00"},
}

var ErrNothingSeeded = errors.New("no slots stored after seeding")

// Result summarises one seeding run.
type Result struct {
	RemovedBookings int64
	RemovedSlots    int64
	Slots           int
	ReservedSlotID  string
}

type Seeder struct {
	slots    slotRepo.Slot
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(slots slotRepo.Slot, bookings bookingRepo.Booking, otel otel.Otel) *Seeder {
	return &Seeder{
		slots:    slots,
		bookings: bookings,
		otel:     otel,
	}
}

// Slots returns the fixed meeting schedule with fresh ids, in schedule order.
func Slots() ([]slotModel.Slot, error) {
	now := timezone.Now()
	slots := make([]slotModel.Slot, 0, len(schedule))

	for _, w := range schedule {
		day, err := timezone.ParseCalendarDate(w.date)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule date %q: %w", w.date, err)
		}

		slot := slotModel.Slot{
			ID:        uuid.NewString(),
			Date:      day,
			StartTime: w.start,
			EndTime:   w.end,
		}
		slot.CreatedAt = now

		slots = append(slots, slot)
	}

	return slots, nil
}

// Run replaces every slot and booking with the fixed schedule and reserves the earliest
// stored slot with a placeholder booking.
func (s *Seeder) Run(ctx context.Context) (res Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Seed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if res.RemovedBookings, err = s.bookings.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("failed to clear bookings: %w", err)
	}

	if res.RemovedSlots, err = s.slots.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("failed to clear slots: %w", err)
	}

	slots, err := Slots()
	if err != nil {
		return res, err
	}

	if err = s.slots.InsertBulk(ctx, slots); err != nil {
		return res, fmt.Errorf("failed to insert slots: %w", err)
	}

	stored, err := s.slots.GetAll(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to read seeded slots: %w", err)
	}

	if len(stored) == 0 {
		return res, ErrNothingSeeded
	}

	reserved := bookingModel.Booking{
		ID:      uuid.NewString(),
		SlotID:  stored[0].ID,
		Name:    reservedName,
		Email:   reservedEmail,
		Country: sql.NullString{String: reservedFrom, Valid: true},
	}
	reserved.CreatedAt = timezone.Now()

	if err = s.bookings.Insert(ctx, reserved); err != nil {
		return res, fmt.Errorf("failed to insert reserved booking: %w", err)
	}

	res.ReservedSlotID = reserved.SlotID

	if res.Slots, err = s.slots.Count(ctx); err != nil {
		return res, fmt.Errorf("failed to count seeded slots: %w", err)
	}

	log.Info().
		Int64("removedBookings", res.RemovedBookings).
		Int64("removedSlots", res.RemovedSlots).
		Int("slots", res.Slots).
		Str("reservedSlotId", res.ReservedSlotID).
		Msg("Seeded meeting slots")

	return res, nil
}
