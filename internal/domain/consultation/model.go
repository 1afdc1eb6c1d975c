package consultation

import (
	"time"

	"github.com/clinic/clinic/pkg/timeslot"
)

// Consultation is a booked (doctor, room) pair for a time range within one day.
type Consultation struct {
	ID        string    `db:"id" json:"id"`
	DoctorID  string    `db:"doctor_id" json:"doctorId"`
	RoomID    string    `db:"room_id" json:"roomId"`
	Begin     time.Time `db:"begin_at" json:"begin"`
	End       time.Time `db:"end_at" json:"end"`
	CreatedAt time.Time `db:"created_at" json:"created_at,omitempty"`
}

// Midnight returns the start of the UTC day the consultation belongs to.
func (c *Consultation) Midnight() time.Time {
	b := c.Begin.UTC()
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey returns the YYYY-MM-DD key of the consultation's day.
func (c *Consultation) DateKey() string {
	return c.Midnight().Format(timeslot.DateLayout)
}

func (c *Consultation) Weekday() time.Weekday {
	return c.Midnight().Weekday()
}

// ClockRange returns the consultation as a clock interval of its day. An end
// at the following midnight maps to 24:00. Partial minutes widen the range so
// that no minute the consultation touches is reported free.
func (c *Consultation) ClockRange() timeslot.TimeSlot {
	midnight := c.Midnight()
	end := timeslot.ClockCeil(c.End.Sub(midnight))
	if end > timeslot.MinutesPerDay {
		end = timeslot.MinutesPerDay
	}
	return timeslot.TimeSlot{Begin: timeslot.ClockOf(c.Begin), End: end}
}

// Affects reports whether the consultation matters for a request window:
// it begins inside [begin, end) or is running at begin.
func (c *Consultation) Affects(begin, end time.Time) bool {
	if !c.Begin.Before(begin) && c.Begin.Before(end) {
		return true
	}
	return !c.Begin.After(begin) && c.End.After(begin)
}
