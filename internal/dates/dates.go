// Package dates provides the small amount of date arithmetic HR screens
// need: working-day counts for leave requests and week bounds for
// attendance views.
package dates

import "time"

// WorkingDays counts Monday-to-Friday days between start and end
// inclusive. An end before start counts zero.
func WorkingDays(start, end time.Time) int {
	start = truncate(start)
	end = truncate(end)
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// StartOfWeek returns Monday 00:00 of t's week.
func StartOfWeek(t time.Time) time.Time {
	t = truncate(t)
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}

// EndOfWeek returns Sunday 00:00 of t's week.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseISO parses the server's YYYY-MM-DD date strings.
func ParseISO(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// FormatISO renders a date the way the server expects it.
func FormatISO(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
