package timezone

import (
	"bilateral/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
	once        sync.Once
)

func location() *time.Location {
	once.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			log.Warn().Msg("No timezone configured, using UTC as default")

			appLocation = time.UTC

			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().
				Err(err).
				Str("timezone", name).
				Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Europe/Brussels', 'UTC', 'Pacific/Fiji'")

			appLocation = time.UTC

			return
		}

		appLocation = loc

		log.Info().
			Str("timezone", name).
			Str("location", loc.String()).
			Msg("Application timezone initialized")
	})

	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(location())
}

// ParseCalendarDate parses a YYYY-MM-DD slot date. Slot dates are calendar days,
// not instants, so they are pinned to UTC midnight and never shifted between zones.
func ParseCalendarDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}
