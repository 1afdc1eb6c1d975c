package availability

import (
	"fmt"
	"slices"

	"github.com/clinic/clinic/pkg/timeslot"
)

// Policy decides what happens when an intersection is shorter than the
// requested duration.
type Policy int

const (
	// PolicyStop ends the matching pass at the first short intersection.
	PolicyStop Policy = iota
	// PolicySkip drops the short intersection and keeps matching.
	PolicySkip
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "stop":
		return PolicyStop, nil
	case "skip":
		return PolicySkip, nil
	}
	return PolicyStop, fmt.Errorf("unknown match policy %q", s)
}

func (p Policy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "stop"
}

// Match intersects the doctor's and the room's free lists, both sorted and
// disjoint, and returns the windows lasting at least minutes. Each interval is
// used once; the part of an interval reaching past an intersection is queued
// again as the next candidate of its side.
func Match(doctor, room timeslot.List, minutes int, policy Policy) timeslot.List {
	a := doctor.Clone()
	b := room.Clone()
	var out timeslot.List

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		x, y := a[i], b[j]

		// room interval ends before the doctor's begins
		if x.Begin > y.End {
			j++
			continue
		}

		candidate := timeslot.TimeSlot{Begin: max(x.Begin, y.Begin), End: min(x.End, y.End)}
		var leftA, leftB *timeslot.TimeSlot
		if y.End > x.End {
			if y.Begin >= x.End {
				i++
				continue
			}
			leftB = &timeslot.TimeSlot{Begin: candidate.End, End: y.End}
		} else if x.End > candidate.End {
			leftA = &timeslot.TimeSlot{Begin: candidate.End, End: x.End}
		}

		short := candidate.Minutes() < minutes
		if short && policy == PolicyStop {
			return out
		}
		if !short {
			out = append(out, candidate)
		}

		i++
		j++
		if leftA != nil {
			a = slices.Insert(a, i, *leftA)
		}
		if leftB != nil {
			b = slices.Insert(b, j, *leftB)
		}
	}
	return out
}
