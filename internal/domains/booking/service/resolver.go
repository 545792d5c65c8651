package service

import (
	"bilateral/internal/domains/booking/model"
	slotModel "bilateral/internal/domains/slot/model"
	"slices"

	"github.com/rs/zerolog/log"
)

// Resolve merges joined rows into one view per slot, ordered by date then start time.
// Should a slot ever carry more than one booking, the earliest one wins and the rest are
// reported.
func Resolve(rows []model.SlotBooking) []model.SlotView {
	views := make([]model.SlotView, 0, len(rows))
	index := make(map[string]int, len(rows))
	discarded := make(map[string][]string)

	for _, row := range rows {
		booking := row.Booking()

		at, seen := index[row.ID]
		if !seen {
			index[row.ID] = len(views)
			views = append(views, model.SlotView{Slot: row.Slot, Booking: booking})

			continue
		}

		if booking == nil {
			continue
		}

		current := views[at].Booking
		if current == nil {
			views[at].Booking = booking

			continue
		}

		if booking.CreatedAt.Before(current.CreatedAt) {
			discarded[row.ID] = append(discarded[row.ID], current.ID)
			views[at].Booking = booking

			continue
		}

		discarded[row.ID] = append(discarded[row.ID], booking.ID)
	}

	for slotID, ids := range discarded {
		log.Warn().
			Str("slotId", slotID).
			Strs("discardedBookingIds", ids).
			Msg("Slot has more than one booking, keeping the earliest")
	}

	slices.SortStableFunc(views, func(a, b model.SlotView) int {
		return slotModel.Less(a.Slot, b.Slot)
	})

	return views
}

// ResolveOne returns the view of a single slot, or false when rows is empty.
func ResolveOne(rows []model.SlotBooking) (model.SlotView, bool) {
	views := Resolve(rows)
	if len(views) == 0 {
		return model.SlotView{}, false
	}

	return views[0], true
}
