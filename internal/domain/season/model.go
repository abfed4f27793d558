package season

import "time"

// Facility is the venue a league runs at. Court booking itself happens
// externally; only the reference is stored.
type Facility struct {
	ID   string
	Name string
	Town string
}

// Season is a fixed-length run of weekly fixtures starting on a Monday.
type Season struct {
	ID       string
	Name     string
	StartsOn time.Time
	Weeks    int
}

// WeekWindow returns the Monday and Sunday bounding the given week.
func (s Season) WeekWindow(weekIndex int) (time.Time, time.Time) {
	start := s.StartsOn.AddDate(0, 0, weekIndex*7)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// WeekIndexAt maps a wall-clock time to a season week, clamped at zero
// for times before the season start.
func (s Season) WeekIndexAt(now time.Time) int {
	days := int(now.Sub(s.StartsOn).Hours() / 24)
	week := days / 7
	if week < 0 {
		return 0
	}
	return week
}

// MondayOf truncates a time to the Monday of its week, midnight UTC.
func MondayOf(now time.Time) time.Time {
	now = now.UTC()
	day := now.Weekday()
	diff := int(time.Monday - day)
	if day == time.Sunday {
		diff = -6
	}
	monday := now.AddDate(0, 0, diff)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
