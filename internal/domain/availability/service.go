package availability

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// MaxRange bounds the span of one request.
const MaxRange = 366 * 24 * time.Hour

var (
	ErrMissingWindow   = errors.New("begin and end are required")
	ErrInvalidWindow   = errors.New("begin must be before end")
	ErrRangeTooLong    = errors.New("requested range is too long")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
)

// Query is one availability request.
type Query struct {
	Begin    time.Time
	End      time.Time
	Duration int // minutes
	// AllDayEvents lets days covering the whole 24 hours skip window clipping.
	AllDayEvents bool
	ShowIDs      bool
}

func (q Query) Validate() error {
	if q.Begin.IsZero() || q.End.IsZero() {
		return ErrMissingWindow
	}
	if !q.Begin.Before(q.End) {
		return ErrInvalidWindow
	}
	if q.End.Sub(q.Begin) > MaxRange {
		return ErrRangeTooLong
	}
	if q.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

type Service struct {
	loader Loader
	policy Policy
	logger zerolog.Logger
}

func NewService(loader Loader, policy Policy, logger zerolog.Logger) *Service {
	return &Service{loader: loader, policy: policy, logger: logger}
}

// Find loads a fresh snapshot and computes the free (doctor, room) windows.
func (s *Service) Find(ctx context.Context, q Query) ([]MatchedSlot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.loader.Load(ctx, q.Begin, q.End)
	if err != nil {
		return nil, err
	}

	tracker := NewTracker()
	ReduceConsultations(tracker, snap.Doctors, snap.Rooms, snap.Consultations, s.logger)

	dates := ExpandDates(q.Begin, q.End)
	if !q.AllDayEvents {
		dates = ExactWindows(dates)
	}

	results := NewAggregator(tracker, s.policy, s.logger).
		Aggregate(snap.Doctors, snap.Rooms, dates, q.Duration, q.ShowIDs)

	s.logger.Debug().
		Time("begin", q.Begin).
		Time("end", q.End).
		Int("duration", q.Duration).
		Int("dates", len(dates)).
		Int("doctors", len(snap.Doctors)).
		Int("rooms", len(snap.Rooms)).
		Int("consultations", len(snap.Consultations)).
		Int("results", len(results)).
		Msg("availability computed")

	return results, nil
}
