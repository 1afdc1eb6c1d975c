package resource

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingID   = errors.New("id is required")
	ErrMissingName = errors.New("name is required")
	ErrDuplicateID = errors.New("duplicate id")
)

// ValidationError marks a rejected catalog; nothing was stored.
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

// Catalog loads doctors and rooms concurrently.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cat.Doctors, err = s.repo.List(gctx, KindDoctor)
		return err
	})
	g.Go(func() error {
		var err error
		cat.Rooms, err = s.repo.List(gctx, KindRoom)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if cat.Doctors == nil {
		cat.Doctors = []*Resource{}
	}
	if cat.Rooms == nil {
		cat.Rooms = []*Resource{}
	}
	return &cat, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Resource, error) {
	return s.repo.List(ctx, KindDoctor)
}

func (s *Service) ListRooms(ctx context.Context) ([]*Resource, error) {
	return s.repo.List(ctx, KindRoom)
}

// Import validates and stores a catalog. Both kinds are validated before
// anything is written.
func (s *Service) Import(ctx context.Context, cat *Catalog) error {
	if err := validateAll(KindDoctor, cat.Doctors); err != nil {
		return &ValidationError{Err: err}
	}
	if err := validateAll(KindRoom, cat.Rooms); err != nil {
		return &ValidationError{Err: err}
	}
	if len(cat.Doctors) > 0 {
		if err := s.repo.Replace(ctx, KindDoctor, cat.Doctors); err != nil {
			return fmt.Errorf("store doctors: %w", err)
		}
	}
	if len(cat.Rooms) > 0 {
		if err := s.repo.Replace(ctx, KindRoom, cat.Rooms); err != nil {
			return fmt.Errorf("store rooms: %w", err)
		}
	}
	return nil
}

func validateAll(kind Kind, items []*Resource) error {
	seen := make(map[string]bool, len(items))
	for i, r := range items {
		if r == nil {
			return fmt.Errorf("%s %d: empty record", kind, i)
		}
		r.Kind = kind
		if err := Validate(r); err != nil {
			return fmt.Errorf("%s %d: %w", kind, i, err)
		}
		if seen[r.ID] {
			return fmt.Errorf("%s %q: %w", kind, r.ID, ErrDuplicateID)
		}
		seen[r.ID] = true
	}
	return nil
}

func Validate(r *Resource) error {
	if r.ID == "" {
		return ErrMissingID
	}
	if r.Name == "" {
		return ErrMissingName
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("invalid resource kind: %q", r.Kind)
	}
	return r.WorkingHours.Validate()
}
