package consultation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingDoctor = errors.New("doctorId is required")
	ErrMissingRoom   = errors.New("roomId is required")
	ErrMissingTimes  = errors.New("begin and end are required")
	ErrInvalidRange  = errors.New("begin must be before end")
	ErrMultiDay      = errors.New("consultation must not span multiple days")
	ErrDuplicateID   = errors.New("duplicate id")
)

// ValidationError marks a rejected batch; nothing was stored.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListAffecting(ctx context.Context, begin, end time.Time) ([]*Consultation, error) {
	return s.repo.ListAffecting(ctx, begin, end)
}

// Import validates every consultation, assigns missing ids and stores the batch.
func (s *Service) Import(ctx context.Context, items []*Consultation) error {
	seen := make(map[string]bool, len(items))
	for i, c := range items {
		if c == nil {
			return &ValidationError{Err: fmt.Errorf("consultation %d: empty record", i)}
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if err := Validate(c); err != nil {
			return &ValidationError{Err: fmt.Errorf("consultation %d: %w", i, err)}
		}
		if seen[c.ID] {
			return &ValidationError{Err: fmt.Errorf("consultation %q: %w", c.ID, ErrDuplicateID)}
		}
		seen[c.ID] = true
		c.Begin = c.Begin.UTC()
		c.End = c.End.UTC()
	}
	if len(items) == 0 {
		return nil
	}
	if err := s.repo.Replace(ctx, items); err != nil {
		return fmt.Errorf("store consultations: %w", err)
	}
	return nil
}

func Validate(c *Consultation) error {
	if c.DoctorID == "" {
		return ErrMissingDoctor
	}
	if c.RoomID == "" {
		return ErrMissingRoom
	}
	if c.Begin.IsZero() || c.End.IsZero() {
		return ErrMissingTimes
	}
	if !c.Begin.Before(c.End) {
		return ErrInvalidRange
	}
	if c.End.After(c.Midnight().AddDate(0, 0, 1)) {
		return ErrMultiDay
	}
	return nil
}
