package availability

import (
	"time"

	"github.com/clinic/clinic/pkg/timeslot"
)

// DateConfig describes the part of one calendar day covered by a request.
type DateConfig struct {
	DateKey   string
	Midnight  time.Time
	DayOfWeek time.Weekday
	Window    timeslot.TimeSlot
	IsFullDay bool
}

// ExpandDates splits [begin, end) into one DateConfig per UTC calendar day it
// touches. The first day starts at begin's clock time, the last day ends at
// end's clock time measured from that day's midnight. A day is full only when
// its window is [00:00, 24:00). Partial minutes shrink the window: begin is
// rounded up and end rounded down.
func ExpandDates(begin, end time.Time) []DateConfig {
	begin, end = begin.UTC(), end.UTC()
	var out []DateConfig

	day := midnightOf(begin)
	cursor := begin
	for cursor.Before(end) {
		next := day.AddDate(0, 0, 1)
		window := timeslot.TimeSlot{
			Begin: timeslot.ClockCeil(cursor.Sub(day)),
			End:   timeslot.MinutesPerDay,
		}
		if !end.After(next) {
			window.End = timeslot.ClockFloor(end.Sub(day))
		}
		// sub-minute remainders can collapse a window
		if window.Begin < window.End {
			out = append(out, DateConfig{
				DateKey:   day.Format(timeslot.DateLayout),
				Midnight:  day,
				DayOfWeek: day.Weekday(),
				Window:    window,
				IsFullDay: window.Begin == 0 && window.End == timeslot.MinutesPerDay,
			})
		}
		day = next
		cursor = next
	}
	return out
}

// ExactWindows marks every config as partial so that each day is clipped to
// its window, including days spanning the whole 24 hours.
func ExactWindows(configs []DateConfig) []DateConfig {
	out := make([]DateConfig, len(configs))
	for i, c := range configs {
		c.IsFullDay = false
		out[i] = c
	}
	return out
}

func midnightOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
