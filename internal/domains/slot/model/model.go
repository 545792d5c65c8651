package model

import (
	"bilateral/shared/constant"
	"bilateral/shared/model"
	"time"
)

const (
	TableName  = "slots"
	EntityName = "slot"

	FieldID        = "id"
	FieldDate      = "date"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"

	IndexDateStart = "slots_date_start_time_key"
)

// Slot is a bookable interval. Date is a calendar day pinned to UTC midnight and the
// times are wall-clock "HH:MM" on that day. Slots are never updated.
type Slot struct {
	ID        string    `db:"id"`
	Date      time.Time `db:"date"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	model.Metadata
}

func (s Slot) DateString() string {
	return s.Date.Format(constant.SlotDateFormat)
}

// Start combines date and start time into an instant in loc.
func (s Slot) Start(loc *time.Location) (time.Time, error) {
	return clockOn(s.Date, s.StartTime, loc)
}

func (s Slot) End(loc *time.Location) (time.Time, error) {
	return clockOn(s.Date, s.EndTime, loc)
}

func clockOn(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse(constant.SlotClockFormat, clock)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}

// Less orders slots by date, then start time.
func Less(a, b Slot) int {
	if cmp := a.Date.Compare(b.Date); cmp != 0 {
		return cmp
	}

	switch {
	case a.StartTime < b.StartTime:
		return -1
	case a.StartTime > b.StartTime:
		return 1
	default:
		return 0
	}
}
