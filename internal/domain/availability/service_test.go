package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/consultation"
	"github.com/clinic/clinic/internal/domain/resource"
)

type stubLoader struct {
	snap  *Snapshot
	err   error
	calls int
}

func (s *stubLoader) Load(_ context.Context, _, _ time.Time) (*Snapshot, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}

func newTestService(snap *Snapshot) (*Service, *stubLoader) {
	loader := &stubLoader{snap: snap}
	return NewService(loader, PolicyStop, zerolog.Nop()), loader
}

func clinicSnapshot() *Snapshot {
	return &Snapshot{
		Doctors: []*resource.Resource{doctor("d1", "09:00", "17:00")},
		Rooms:   []*resource.Resource{room("r1", "09:00", "17:00")},
		Consultations: []*consultation.Consultation{
			booking("c1", "d1", "r1", monday, "12:00", "13:00"),
		},
	}
}

func TestQuery_Validate(t *testing.T) {
	valid := Query{Begin: monday, End: monday.Add(time.Hour), Duration: 30}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		q    Query
		want error
	}{
		{"missing", Query{Duration: 30}, ErrMissingWindow},
		{"inverted", Query{Begin: monday.Add(time.Hour), End: monday, Duration: 30}, ErrInvalidWindow},
		{"equal", Query{Begin: monday, End: monday, Duration: 30}, ErrInvalidWindow},
		{"too long", Query{Begin: monday, End: monday.AddDate(2, 0, 0), Duration: 30}, ErrRangeTooLong},
		{"zero duration", Query{Begin: monday, End: monday.Add(time.Hour)}, ErrInvalidDuration},
		{"negative duration", Query{Begin: monday, End: monday.Add(time.Hour), Duration: -5}, ErrInvalidDuration},
	}
	for _, tc := range cases {
		if err := tc.q.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestService_Find(t *testing.T) {
	svc, _ := newTestService(clinicSnapshot())

	got, err := svc.Find(context.Background(), Query{
		Begin: monday, End: monday.AddDate(0, 0, 1), Duration: 60, AllDayEvents: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %+v", got)
	}
	if !got[0].End.Equal(at(monday, "12:00")) || !got[1].Begin.Equal(at(monday, "13:00")) {
		t.Errorf("unexpected slots %+v", got)
	}
}

func TestService_FindExactWindows(t *testing.T) {
	svc, _ := newTestService(clinicSnapshot())

	got, err := svc.Find(context.Background(), Query{
		Begin: at(monday, "10:00"), End: at(monday, "15:00"), Duration: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %+v", got)
	}
	if !got[0].Begin.Equal(at(monday, "10:00")) || !got[1].End.Equal(at(monday, "15:00")) {
		t.Errorf("expected slots clipped to the window, got %+v", got)
	}
}

func TestService_FindFreshStatePerRequest(t *testing.T) {
	svc, loader := newTestService(clinicSnapshot())
	q := Query{Begin: monday, End: monday.AddDate(0, 0, 1), Duration: 60, AllDayEvents: true}

	first, err := svc.Find(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Find(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Errorf("expected identical results, got %d and %d", len(first), len(second))
	}
	if loader.calls != 2 {
		t.Errorf("expected a load per request, got %d", loader.calls)
	}
}

func TestService_FindValidationSkipsLoader(t *testing.T) {
	svc, loader := newTestService(clinicSnapshot())
	_, err := svc.Find(context.Background(), Query{Begin: monday, End: monday.Add(time.Hour)})
	if !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
	if loader.calls != 0 {
		t.Error("expected loader not to be called")
	}
}

func TestService_FindLoaderError(t *testing.T) {
	boom := errors.New("store unavailable")
	svc := NewService(&stubLoader{err: boom}, PolicyStop, zerolog.Nop())
	_, err := svc.Find(context.Background(), Query{Begin: monday, End: monday.Add(time.Hour), Duration: 30})
	if !errors.Is(err, boom) {
		t.Errorf("expected loader error, got %v", err)
	}
}

func TestService_FindEmptyClinic(t *testing.T) {
	svc, _ := newTestService(&Snapshot{})
	got, err := svc.Find(context.Background(), Query{Begin: monday, End: monday.AddDate(0, 0, 1), Duration: 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected an empty, non-nil result, got %#v", got)
	}
}

func TestService_FindPartialMinuteBeginStaysInsideWindow(t *testing.T) {
	svc, _ := newTestService(clinicSnapshot())

	got, err := svc.Find(context.Background(), Query{
		Begin: at(monday, "10:00").Add(30 * time.Second), End: at(monday, "15:00"), Duration: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %+v", got)
	}
	if !got[0].Begin.Equal(at(monday, "10:01")) {
		t.Errorf("expected first slot to begin at 10:01, got %s", got[0].Begin)
	}
}

func TestService_FindPartialMinuteConsultationEnd(t *testing.T) {
	c := booking("c1", "d1", "r1", monday, "09:00", "09:30")
	c.End = c.End.Add(45 * time.Second)
	svc, _ := newTestService(&Snapshot{
		Doctors:       []*resource.Resource{doctor("d1", "09:00", "12:00")},
		Rooms:         []*resource.Resource{room("r1", "09:00", "12:00")},
		Consultations: []*consultation.Consultation{c},
	})

	got, err := svc.Find(context.Background(), Query{
		Begin: monday, End: monday.AddDate(0, 0, 1), Duration: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 slot, got %+v", got)
	}
	if got[0].Begin.Before(c.End) {
		t.Errorf("slot %s overlaps consultation ending %s", got[0].Begin, c.End)
	}
	if !got[0].Begin.Equal(at(monday, "09:31")) || !got[0].End.Equal(at(monday, "12:00")) {
		t.Errorf("expected 09:31-12:00, got %+v", got[0])
	}
}

// A short gap ahead of a long one ends a stop-policy pass on a full day, while
// exact windows clip the gap away first.
func TestService_FindAllDayEventsChangesResult(t *testing.T) {
	snap := func() *Snapshot {
		return &Snapshot{
			Doctors: []*resource.Resource{doctor("d1", "09:00", "12:00")},
			Rooms:   []*resource.Resource{room("r1", "09:00", "12:00")},
			// r9 is unknown, so only the doctor loses 09:20-10:00
			Consultations: []*consultation.Consultation{booking("c1", "d1", "r9", monday, "09:20", "10:00")},
		}
	}
	q := Query{Begin: monday, End: monday.AddDate(0, 0, 1), Duration: 60}

	svc, _ := newTestService(snap())
	exact, err := svc.Find(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exact) != 1 || !exact[0].Begin.Equal(at(monday, "10:00")) {
		t.Errorf("expected 10:00-12:00 with exact windows, got %+v", exact)
	}

	q.AllDayEvents = true
	svc, _ = newTestService(snap())
	fullDay, err := svc.Find(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fullDay) != 0 {
		t.Errorf("expected the 20 minute gap to stop the pass, got %+v", fullDay)
	}
}
