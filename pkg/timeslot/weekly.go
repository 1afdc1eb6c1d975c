package timeslot

import (
	"encoding/json"
	"fmt"
	"time"
)

// WorkingHours is a weekly template indexed by time.Weekday (Sunday = 0).
// A nil entry means no work on that day.
type WorkingHours [DaysPerWeek]*TimeSlot

// On returns the slot for the given weekday.
func (w WorkingHours) On(day time.Weekday) (TimeSlot, bool) {
	if day < 0 || int(day) >= DaysPerWeek || w[day] == nil {
		return TimeSlot{}, false
	}
	return *w[day], true
}

// Set assigns the slot for a weekday.
func (w *WorkingHours) Set(day time.Weekday, s TimeSlot) {
	w[day] = &s
}

func (w WorkingHours) Validate() error {
	for day, s := range w {
		if s == nil {
			continue
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%s: %w", time.Weekday(day), err)
		}
	}
	return nil
}

// UnmarshalJSON accepts arrays shorter than a week; missing days are off.
func (w *WorkingHours) UnmarshalJSON(data []byte) error {
	var raw []*TimeSlot
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) > DaysPerWeek {
		return fmt.Errorf("working hours: expected at most %d days, got %d", DaysPerWeek, len(raw))
	}
	var out WorkingHours
	copy(out[:], raw)
	*w = out
	return nil
}
