package timeslot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay is the exclusive upper bound of a clock time; it renders as "24:00".
	MinutesPerDay = 24 * 60
	// DaysPerWeek is the length of a WorkingHours template.
	DaysPerWeek = 7
	// DateLayout is the layout of a date key.
	DateLayout = "2006-01-02"
)

var (
	ErrInvalidClock = errors.New("invalid clock time")
	ErrInvalidSlot  = errors.New("slot begin must be before end")
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses an "HH:mm" string. "24:00" is accepted as end of day.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(h*60 + m), nil
}

// ClockOf returns the clock time of t in UTC.
func ClockOf(t time.Time) Clock {
	t = t.UTC()
	return Clock(t.Hour()*60 + t.Minute())
}

// ClockFloor converts an offset from midnight to a clock time, dropping any
// partial minute.
func ClockFloor(sinceMidnight time.Duration) Clock {
	return Clock(sinceMidnight / time.Minute)
}

// ClockCeil is ClockFloor rounded up to the next whole minute.
func ClockCeil(sinceMidnight time.Duration) Clock {
	return Clock((sinceMidnight + time.Minute - 1) / time.Minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On returns the absolute instant of c on the day starting at midnight.
func (c Clock) On(midnight time.Time) time.Time {
	return midnight.Add(time.Duration(c) * time.Minute)
}

// TimeSlot is a half-open clock interval [Begin, End) within one day.
type TimeSlot struct {
	Begin Clock
	End   Clock
}

// New builds a slot from two "HH:mm" strings.
func New(begin, end string) (TimeSlot, error) {
	b, err := ParseClock(begin)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeSlot{}, err
	}
	s := TimeSlot{Begin: b, End: e}
	if err := s.Validate(); err != nil {
		return TimeSlot{}, err
	}
	return s, nil
}

// MustNew is New for literals known to be valid.
func MustNew(begin, end string) TimeSlot {
	s, err := New(begin, end)
	if err != nil {
		panic(err)
	}
	return s
}

func (s TimeSlot) Validate() error {
	if s.Begin < 0 || s.End > MinutesPerDay || s.Begin >= s.End {
		return fmt.Errorf("%w: %s", ErrInvalidSlot, s)
	}
	return nil
}

// Minutes returns the length of the slot.
func (s TimeSlot) Minutes() int {
	return int(s.End - s.Begin)
}

func (s TimeSlot) String() string {
	return s.Begin.String() + "-" + s.End.String()
}

// Overlaps reports whether the two slots share at least one minute.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Begin < o.End && o.Begin < s.End
}

// Intersect returns the common part of s and o.
func (s TimeSlot) Intersect(o TimeSlot) (TimeSlot, bool) {
	r := TimeSlot{Begin: max(s.Begin, o.Begin), End: min(s.End, o.End)}
	if r.Begin >= r.End {
		return TimeSlot{}, false
	}
	return r, true
}

// Subtract removes o from s and returns the zero, one or two residual parts.
// A disjoint o leaves s unchanged.
func (s TimeSlot) Subtract(o TimeSlot) []TimeSlot {
	if !s.Overlaps(o) {
		return []TimeSlot{s}
	}
	var out []TimeSlot
	if o.Begin > s.Begin {
		out = append(out, TimeSlot{Begin: s.Begin, End: o.Begin})
	}
	if o.End < s.End {
		out = append(out, TimeSlot{Begin: o.End, End: s.End})
	}
	return out
}

type slotJSON struct {
	Begin string `json:"begin"`
	End   string `json:"end"`
}

func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(slotJSON{Begin: s.Begin.String(), End: s.End.String()})
}

func (s *TimeSlot) UnmarshalJSON(data []byte) error {
	var raw slotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := New(raw.Begin, raw.End)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// List is an ordered, non-overlapping list of free slots.
type List []TimeSlot

// Clone returns an independent copy.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Subtract removes o from every slot of the list.
func (l List) Subtract(o TimeSlot) List {
	out := make(List, 0, len(l)+1)
	for _, s := range l {
		out = append(out, s.Subtract(o)...)
	}
	return out
}

// Clip intersects every slot with window and keeps the parts lasting at least minMinutes.
func (l List) Clip(window TimeSlot, minMinutes int) List {
	var out List
	for _, s := range l {
		r, ok := s.Intersect(window)
		if !ok || r.Minutes() < minMinutes {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Fits reports whether some slot lasts at least minMinutes.
func (l List) Fits(minMinutes int) bool {
	for _, s := range l {
		if s.Minutes() >= minMinutes {
			return true
		}
	}
	return false
}

// Disjoint reports whether the list is sorted and pairwise non-overlapping.
func (l List) Disjoint() bool {
	for i, s := range l {
		if s.Begin >= s.End {
			return false
		}
		if i > 0 && l[i-1].End > s.Begin {
			return false
		}
	}
	return true
}
