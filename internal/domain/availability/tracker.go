package availability

import (
	"time"

	"github.com/clinic/clinic/internal/domain/resource"
	"github.com/clinic/clinic/pkg/timeslot"
)

// FreeTime is the state of one resource on one date: either a free list or
// Booked. The zero value is an empty free list.
type FreeTime struct {
	booked bool
	slots  timeslot.List
}

func Free(slots timeslot.List) FreeTime { return FreeTime{slots: slots} }

func Booked() FreeTime { return FreeTime{booked: true} }

func (f FreeTime) IsBooked() bool { return f.booked }

// Slots returns a copy of the free list; nil when booked.
func (f FreeTime) Slots() timeslot.List {
	if f.booked {
		return nil
	}
	return f.slots.Clone()
}

type trackKey struct {
	kind resource.Kind
	id   string
	date string
}

// Tracker owns the free time of every resource for the lifetime of one
// request. Once a resource is Booked for a date it stays Booked.
type Tracker struct {
	state map[trackKey]*FreeTime
}

func NewTracker() *Tracker {
	return &Tracker{state: make(map[trackKey]*FreeTime)}
}

func keyOf(r *resource.Resource, dateKey string) trackKey {
	return trackKey{kind: r.Kind, id: r.ID, date: dateKey}
}

// EnsureInitialized seeds the date with the resource's working hours for the
// day of week. It reports false when the resource does not work that day.
func (t *Tracker) EnsureInitialized(r *resource.Resource, dateKey string, day time.Weekday) bool {
	k := keyOf(r, dateKey)
	if _, ok := t.state[k]; ok {
		return true
	}
	hours, ok := r.WorksOn(day)
	if !ok {
		return false
	}
	t.state[k] = &FreeTime{slots: timeslot.List{hours}}
	return true
}

// State returns the current state and whether the date was initialized.
func (t *Tracker) State(r *resource.Resource, dateKey string) (FreeTime, bool) {
	f, ok := t.state[keyOf(r, dateKey)]
	if !ok {
		return FreeTime{}, false
	}
	return FreeTime{booked: f.booked, slots: f.slots.Clone()}, true
}

func (t *Tracker) IsBooked(r *resource.Resource, dateKey string) bool {
	f, ok := t.state[keyOf(r, dateKey)]
	return ok && f.booked
}

func (t *Tracker) MarkBooked(r *resource.Resource, dateKey string) {
	t.state[keyOf(r, dateKey)] = &FreeTime{booked: true}
}

// Free returns a copy of the free list, nil when booked or uninitialized.
func (t *Tracker) Free(r *resource.Resource, dateKey string) timeslot.List {
	f, ok := t.state[keyOf(r, dateKey)]
	if !ok {
		return nil
	}
	return f.Slots()
}

// Subtract removes slot from every free interval of the date.
func (t *Tracker) Subtract(r *resource.Resource, dateKey string, slot timeslot.TimeSlot) {
	f, ok := t.state[keyOf(r, dateKey)]
	if !ok || f.booked {
		return
	}
	t.settle(f, f.slots.Subtract(slot))
}

// Consume removes a matched slot from the first free interval ending after the
// slot's begin.
func (t *Tracker) Consume(r *resource.Resource, dateKey string, slot timeslot.TimeSlot) {
	f, ok := t.state[keyOf(r, dateKey)]
	if !ok || f.booked {
		return
	}
	for i, s := range f.slots {
		if s.End <= slot.Begin {
			continue
		}
		next := make(timeslot.List, 0, len(f.slots)+1)
		next = append(next, f.slots[:i]...)
		next = append(next, s.Subtract(slot)...)
		next = append(next, f.slots[i+1:]...)
		t.settle(f, next)
		return
	}
}

func (t *Tracker) settle(f *FreeTime, slots timeslot.List) {
	if len(slots) == 0 {
		f.booked = true
		f.slots = nil
		return
	}
	f.slots = slots
}
