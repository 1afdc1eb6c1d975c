package consultation

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]*Consultation, int, error)
	// ListAffecting returns the consultations for which Affects(begin, end) holds.
	ListAffecting(ctx context.Context, begin, end time.Time) ([]*Consultation, error)
	// Replace stores items, overwriting records with the same id.
	Replace(ctx context.Context, items []*Consultation) error
}
