package availability

import (
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/consultation"
	"github.com/clinic/clinic/internal/domain/resource"
)

// ReduceConsultations seeds the tracker with the free time left by existing
// consultations. Consultations are applied in order; a resource whose free
// list empties becomes Booked for that date.
func ReduceConsultations(t *Tracker, doctors, rooms []*resource.Resource, consultations []*consultation.Consultation, logger zerolog.Logger) {
	doctorByID := indexByID(doctors)
	roomByID := indexByID(rooms)

	for _, c := range consultations {
		dateKey := c.DateKey()
		day := c.Weekday()
		slot := c.ClockRange()

		for _, r := range []*resource.Resource{doctorByID[c.DoctorID], roomByID[c.RoomID]} {
			if r == nil {
				logger.Debug().
					Str("consultation_id", c.ID).
					Str("doctor_id", c.DoctorID).
					Str("room_id", c.RoomID).
					Msg("consultation references unknown resource")
				continue
			}
			if !t.EnsureInitialized(r, dateKey, day) {
				continue
			}
			t.Subtract(r, dateKey, slot)
		}
	}
}

func indexByID(items []*resource.Resource) map[string]*resource.Resource {
	out := make(map[string]*resource.Resource, len(items))
	for _, r := range items {
		out[r.ID] = r
	}
	return out
}
