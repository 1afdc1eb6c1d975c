package availability

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/resource"
	"github.com/clinic/clinic/pkg/timeslot"
)

// MatchedSlot is a window where a doctor and a room are both free.
type MatchedSlot struct {
	Begin    time.Time `json:"begin"`
	End      time.Time `json:"end"`
	DoctorID string    `json:"doctorId,omitempty"`
	RoomID   string    `json:"roomId,omitempty"`
}

// Aggregator walks dates × rooms × doctors and books every match it finds in
// the tracker so that no later combination can reuse the same minutes.
type Aggregator struct {
	tracker *Tracker
	policy  Policy
	logger  zerolog.Logger
}

func NewAggregator(tracker *Tracker, policy Policy, logger zerolog.Logger) *Aggregator {
	return &Aggregator{tracker: tracker, policy: policy, logger: logger}
}

// Aggregate returns the matched slots sorted by begin. Without showIDs the ids
// are omitted and identical windows reported by several pairs collapse.
func (a *Aggregator) Aggregate(doctors, rooms []*resource.Resource, dates []DateConfig, minutes int, showIDs bool) []MatchedSlot {
	results := []MatchedSlot{}

	for _, dc := range dates {
		for _, room := range rooms {
			for _, doctor := range doctors {
				for _, slot := range a.matchPair(doctor, room, dc, minutes) {
					a.tracker.Consume(doctor, dc.DateKey, slot)
					a.tracker.Consume(room, dc.DateKey, slot)

					m := MatchedSlot{
						Begin: slot.Begin.On(dc.Midnight),
						End:   slot.End.On(dc.Midnight),
					}
					if showIDs {
						m.DoctorID = doctor.ID
						m.RoomID = room.ID
					}
					results = append(results, m)
				}
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Begin.Before(results[j].Begin)
	})
	if !showIDs {
		results = dedupe(results)
	}
	return results
}

func (a *Aggregator) matchPair(doctor, room *resource.Resource, dc DateConfig, minutes int) timeslot.List {
	log := a.logger.With().
		Str("date", dc.DateKey).
		Str("doctor_id", doctor.ID).
		Str("room_id", room.ID).
		Logger()

	if _, ok := room.WorksOn(dc.DayOfWeek); !ok {
		log.Debug().Msg("room does not work this day, skipping")
		return nil
	}
	if _, ok := doctor.WorksOn(dc.DayOfWeek); !ok {
		log.Debug().Msg("doctor does not work this day, skipping")
		return nil
	}
	if a.tracker.IsBooked(room, dc.DateKey) || a.tracker.IsBooked(doctor, dc.DateKey) {
		log.Debug().Msg("resource already booked for the date, skipping")
		return nil
	}

	a.tracker.EnsureInitialized(doctor, dc.DateKey, dc.DayOfWeek)
	a.tracker.EnsureInitialized(room, dc.DateKey, dc.DayOfWeek)

	doctorFree := a.tracker.Free(doctor, dc.DateKey)
	roomFree := a.tracker.Free(room, dc.DateKey)

	candidatesDoctor, candidatesRoom := doctorFree, roomFree
	if !dc.IsFullDay {
		candidatesDoctor = doctorFree.Clip(dc.Window, minutes)
		candidatesRoom = roomFree.Clip(dc.Window, minutes)
		if len(candidatesDoctor) == 0 || len(candidatesRoom) == 0 {
			log.Debug().Str("window", dc.Window.String()).Msg("no free time inside the window, skipping")
			return nil
		}
	}

	feasible := true
	if !doctorFree.Fits(minutes) {
		a.tracker.MarkBooked(doctor, dc.DateKey)
		log.Debug().Int("duration", minutes).Msg("doctor has no interval long enough, marked booked")
		feasible = false
	}
	if !roomFree.Fits(minutes) {
		a.tracker.MarkBooked(room, dc.DateKey)
		log.Debug().Int("duration", minutes).Msg("room has no interval long enough, marked booked")
		feasible = false
	}
	if !feasible {
		return nil
	}

	return Match(candidatesDoctor, candidatesRoom, minutes, a.policy)
}

type slotKey struct {
	begin, end int64
}

func dedupe(in []MatchedSlot) []MatchedSlot {
	seen := make(map[slotKey]bool, len(in))
	out := in[:0]
	for _, m := range in {
		k := slotKey{begin: m.Begin.UnixNano(), end: m.End.UnixNano()}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}
