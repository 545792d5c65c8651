package notifier

import (
	"context"

	"github.com/rs/zerolog/log"
)

type logChannel struct{}

func NewLogChannel() Channel {
	return logChannel{}
}

func (logChannel) Name() string {
	return "log"
}

func (logChannel) Deliver(_ context.Context, notice Notice) error {
	log.Info().
		Str("kind", string(notice.Kind)).
		Str("slotId", notice.Slot.ID).
		Str("date", notice.Slot.DateString()).
		Str("start", notice.Slot.StartTime).
		Str("country", notice.Attendee.Country).
		Str("email", notice.Attendee.Email).
		Msg("Booking notice")

	return nil
}
