package season

import (
	"testing"
	"time"
)

func TestWeekWindow(t *testing.T) {
	s := Season{ID: "s1", StartsOn: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Weeks: 8}

	start, end := s.WeekWindow(0)
	if !start.Equal(s.StartsOn) {
		t.Fatalf("expected week 0 to start at season start, got %s", start)
	}
	if !end.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected week 0 to end on Sunday, got %s", end)
	}

	start, _ = s.WeekWindow(3)
	if !start.Equal(time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week 3 start: %s", start)
	}
}

func TestWeekIndexAt(t *testing.T) {
	s := Season{ID: "s1", StartsOn: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Weeks: 8}

	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC), 0},
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC), 4},
		{time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		if got := s.WeekIndexAt(tc.now); got != tc.want {
			t.Fatalf("WeekIndexAt(%s) = %d, want %d", tc.now, got, tc.want)
		}
	}
}

func TestMondayOf(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := MondayOf(tc.now); !got.Equal(tc.want) {
			t.Fatalf("MondayOf(%s) = %s, want %s", tc.now, got, tc.want)
		}
	}
}
