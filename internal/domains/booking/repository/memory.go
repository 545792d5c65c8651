package repository

import (
	"bilateral/infras/memdb"
	"bilateral/infras/otel"
	"bilateral/internal/domains/booking/model"
	slotModel "bilateral/internal/domains/slot/model"
	slotRepo "bilateral/internal/domains/slot/repository"
	"bilateral/shared/constant"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
)

func memoryBookings(mem *memdb.DB) *memdb.Table[model.Booking] {
	return memdb.Use(mem, model.TableName,
		func(booking model.Booking) string { return booking.ID },
		memdb.Index[model.Booking]{
			Name:  model.IndexSlotUnique,
			Value: func(booking model.Booking) string { return booking.SlotID },
		},
	)
}

// memoryImpl serializes every write on the store lock, which makes the slot existence
// check and the unique slot index one atomic step.
type memoryImpl struct {
	mem      *memdb.DB
	slots    *memdb.Table[slotModel.Slot]
	bookings *memdb.Table[model.Booking]
	otel     otel.Otel
}

func NewMemory(mem *memdb.DB, otel otel.Otel) Booking {
	return &memoryImpl{
		mem:      mem,
		slots:    slotRepo.MemoryTable(mem),
		bookings: memoryBookings(mem),
		otel:     otel,
	}
}

func (r *memoryImpl) join(slot slotModel.Slot) []model.SlotBooking {
	bookings := r.bookings.Find(func(booking model.Booking) bool { return booking.SlotID == slot.ID })
	if len(bookings) == 0 {
		return []model.SlotBooking{{Slot: slot}}
	}

	rows := make([]model.SlotBooking, 0, len(bookings))

	for _, booking := range bookings {
		rows = append(rows, model.SlotBooking{
			Slot:           slot,
			BookingID:      sql.NullString{String: booking.ID, Valid: true},
			BookingName:    sql.NullString{String: booking.Name, Valid: true},
			BookingEmail:   sql.NullString{String: booking.Email, Valid: true},
			BookingCountry: booking.Country,
			BookedAt:       sql.NullTime{Time: booking.CreatedAt, Valid: true},
		})
	}

	return rows
}

func (r *memoryImpl) ListSlotBookings(ctx context.Context) (rows []model.SlotBooking, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.memory.ListSlotBookings")
	defer scope.End()

	_ = r.mem.View(func() error {
		slots := r.slots.All()
		slices.SortStableFunc(slots, slotModel.Less)

		rows = []model.SlotBooking{}
		for _, slot := range slots {
			rows = append(rows, r.join(slot)...)
		}

		return nil
	})

	return rows, nil
}

func (r *memoryImpl) GetSlotBookings(ctx context.Context, slotID string) (rows []model.SlotBooking, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.memory.GetSlotBookings")
	defer scope.End()

	scope.SetAttribute(constant.OtelSlotIDAttribute, slotID)

	_ = r.mem.View(func() error {
		slot, ok := r.slots.Get(slotID)
		if !ok {
			rows = []model.SlotBooking{}

			return nil
		}

		rows = r.join(slot)

		return nil
	})

	return rows, nil
}

func (r *memoryImpl) Insert(ctx context.Context, booking model.Booking) error {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.memory.Insert")
	defer scope.End()

	err := r.mem.Update(func() error {
		if _, ok := r.slots.Get(booking.SlotID); !ok {
			return fmt.Errorf("%w: %s", model.ErrUnknownSlot, booking.SlotID)
		}

		err := r.bookings.Insert(booking)
		if errors.Is(err, memdb.ErrUniqueViolation) {
			return fmt.Errorf("%w: %s", model.ErrDuplicateBooking, model.IndexSlotUnique)
		}

		return err //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)
	}

	return err
}

func (r *memoryImpl) Delete(ctx context.Context, id string) error {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.memory.Delete")
	defer scope.End()

	return r.mem.Update(func() error {
		if r.bookings.Delete(func(booking model.Booking) bool { return booking.ID == id }) == 0 {
			return model.ErrBookingNotFound
		}

		return nil
	})
}

func (r *memoryImpl) DeleteAll(ctx context.Context) (removed int64, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.memory.DeleteAll")
	defer scope.End()

	_ = r.mem.Update(func() error {
		removed = int64(r.bookings.Delete(func(model.Booking) bool { return true }))

		return nil
	})

	return removed, nil
}
