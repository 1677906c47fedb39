package analytics

import "time"

// startOfDay returns midnight of t's calendar date in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBack returns midnight of the calendar date n days before now's date.
func daysBack(now time.Time, n int) time.Time {
	loc := now.Location()
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d-n, 0, 0, 0, 0, loc)
}

// sameDay reports whether t falls on the calendar date that starts at day.
func sameDay(t, day time.Time) bool {
	return startOfDay(t, day.Location()).Equal(day)
}
