package availability

import (
	"time"

	"github.com/clinic/clinic/internal/domain/consultation"
	"github.com/clinic/clinic/internal/domain/resource"
	"github.com/clinic/clinic/pkg/timeslot"
)

// 2024-01-01 is a Monday.
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(day time.Time, clock string) time.Time {
	c, err := timeslot.ParseClock(clock)
	if err != nil {
		panic(err)
	}
	return c.On(day)
}

func newResource(kind resource.Kind, id string, hours map[time.Weekday]timeslot.TimeSlot) *resource.Resource {
	r := &resource.Resource{ID: id, Kind: kind, Name: id}
	for day, s := range hours {
		r.WorkingHours.Set(day, s)
	}
	return r
}

func weekdays(begin, end string) map[time.Weekday]timeslot.TimeSlot {
	s := timeslot.MustNew(begin, end)
	return map[time.Weekday]timeslot.TimeSlot{
		time.Monday: s, time.Tuesday: s, time.Wednesday: s, time.Thursday: s, time.Friday: s,
	}
}

func doctor(id, begin, end string) *resource.Resource {
	return newResource(resource.KindDoctor, id, weekdays(begin, end))
}

func room(id, begin, end string) *resource.Resource {
	return newResource(resource.KindRoom, id, weekdays(begin, end))
}

func booking(id, doctorID, roomID string, day time.Time, begin, end string) *consultation.Consultation {
	return &consultation.Consultation{
		ID:       id,
		DoctorID: doctorID,
		RoomID:   roomID,
		Begin:    at(day, begin),
		End:      at(day, end),
	}
}

func slots(pairs ...string) timeslot.List {
	var out timeslot.List
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, timeslot.MustNew(pairs[i], pairs[i+1]))
	}
	return out
}

func equalLists(a, b timeslot.List) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
