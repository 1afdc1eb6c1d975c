package availability

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clinic/clinic/internal/domain/consultation"
	"github.com/clinic/clinic/internal/domain/resource"
)

// Snapshot is everything one availability request computes over.
type Snapshot struct {
	Doctors       []*resource.Resource
	Rooms         []*resource.Resource
	Consultations []*consultation.Consultation
}

type Loader interface {
	Load(ctx context.Context, begin, end time.Time) (*Snapshot, error)
}

// RepoLoader reads doctors, rooms and the consultations affecting the window
// in parallel.
type RepoLoader struct {
	resources     resource.Repository
	consultations consultation.Repository
}

func NewRepoLoader(resources resource.Repository, consultations consultation.Repository) *RepoLoader {
	return &RepoLoader{resources: resources, consultations: consultations}
}

func (l *RepoLoader) Load(ctx context.Context, begin, end time.Time) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Doctors, err = l.resources.List(gctx, resource.KindDoctor)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Rooms, err = l.resources.List(gctx, resource.KindRoom)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Consultations, err = l.consultations.ListAffecting(gctx, begin, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
