package availability

import (
	"testing"
	"time"

	"github.com/clinic/clinic/pkg/timeslot"
)

func TestExpandDates_ThreeDays(t *testing.T) {
	begin := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC)

	got := ExpandDates(begin, end)
	if len(got) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(got))
	}

	want := []struct {
		key    string
		window timeslot.TimeSlot
		full   bool
	}{
		{"2024-01-01", timeslot.MustNew("10:00", "24:00"), false},
		{"2024-01-02", timeslot.MustNew("00:00", "24:00"), true},
		{"2024-01-03", timeslot.MustNew("00:00", "14:00"), false},
	}
	for i, w := range want {
		if got[i].DateKey != w.key {
			t.Errorf("day %d: expected key %s, got %s", i, w.key, got[i].DateKey)
		}
		if got[i].Window != w.window {
			t.Errorf("day %d: expected window %s, got %s", i, w.window, got[i].Window)
		}
		if got[i].IsFullDay != w.full {
			t.Errorf("day %d: expected full=%v, got %v", i, w.full, got[i].IsFullDay)
		}
	}
	if got[0].DayOfWeek != time.Monday || got[2].DayOfWeek != time.Wednesday {
		t.Errorf("unexpected weekdays %s, %s", got[0].DayOfWeek, got[2].DayOfWeek)
	}
}

func TestExpandDates_SameDay(t *testing.T) {
	got := ExpandDates(at(monday, "09:00"), at(monday, "12:30"))
	if len(got) != 1 {
		t.Fatalf("expected 1 date, got %d", len(got))
	}
	if got[0].Window != timeslot.MustNew("09:00", "12:30") || got[0].IsFullDay {
		t.Errorf("unexpected config %+v", got[0])
	}
}

func TestExpandDates_EndAtMidnight(t *testing.T) {
	got := ExpandDates(at(monday, "18:00"), monday.AddDate(0, 0, 1))
	if len(got) != 1 {
		t.Fatalf("expected 1 date, got %d", len(got))
	}
	if got[0].Window != timeslot.MustNew("18:00", "24:00") {
		t.Errorf("unexpected window %s", got[0].Window)
	}
}

func TestExpandDates_WholeDay(t *testing.T) {
	got := ExpandDates(monday, monday.AddDate(0, 0, 1))
	if len(got) != 1 || !got[0].IsFullDay {
		t.Fatalf("expected one full day, got %+v", got)
	}
}

func TestExpandDates_Empty(t *testing.T) {
	if got := ExpandDates(at(monday, "10:00"), at(monday, "10:00")); len(got) != 0 {
		t.Errorf("expected no dates, got %+v", got)
	}
}

func TestExpandDates_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	begin := time.Date(2024, 1, 1, 11, 0, 0, 0, loc)
	end := time.Date(2024, 1, 1, 13, 0, 0, 0, loc)
	got := ExpandDates(begin, end)
	if len(got) != 1 || got[0].Window != timeslot.MustNew("09:00", "11:00") {
		t.Errorf("expected UTC window 09:00-11:00, got %+v", got)
	}
}

func TestExactWindows(t *testing.T) {
	in := ExpandDates(at(monday, "10:00"), at(monday.AddDate(0, 0, 2), "14:00"))
	got := ExactWindows(in)
	for i, c := range got {
		if c.IsFullDay {
			t.Errorf("day %d: expected partial", i)
		}
	}
	if !in[1].IsFullDay {
		t.Error("expected input to be left untouched")
	}
	if got[1].Window != timeslot.MustNew("00:00", "24:00") {
		t.Errorf("unexpected middle window %s", got[1].Window)
	}
}

func TestExpandDates_PartialMinutesShrinkWindow(t *testing.T) {
	got := ExpandDates(at(monday, "10:00").Add(30*time.Second), at(monday, "12:00").Add(45*time.Second))
	if len(got) != 1 {
		t.Fatalf("expected 1 config, got %+v", got)
	}
	if got[0].Window != timeslot.MustNew("10:01", "12:00") {
		t.Errorf("expected 10:01-12:00, got %s", got[0].Window)
	}
}
