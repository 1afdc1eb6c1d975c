package resource

import (
	"time"

	"github.com/clinic/clinic/pkg/timeslot"
)

// Kind distinguishes the two bookable resource variants.
type Kind string

const (
	KindDoctor Kind = "doctor"
	KindRoom   Kind = "room"
)

func (k Kind) Valid() bool {
	return k == KindDoctor || k == KindRoom
}

// Resource is a doctor or a room with a recurring weekly template.
type Resource struct {
	ID           string                `db:"id" json:"id"`
	Kind         Kind                  `db:"kind" json:"-"`
	Name         string                `db:"name" json:"name"`
	WorkingHours timeslot.WorkingHours `db:"working_hours" json:"workingHours"`
	CreatedAt    time.Time             `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt    time.Time             `db:"updated_at" json:"updated_at,omitempty"`
}

// WorksOn returns the working slot for a weekday.
func (r *Resource) WorksOn(day time.Weekday) (timeslot.TimeSlot, bool) {
	return r.WorkingHours.On(day)
}

// Catalog holds every doctor and room.
type Catalog struct {
	Doctors []*Resource `json:"doctors"`
	Rooms   []*Resource `json:"rooms"`
}
