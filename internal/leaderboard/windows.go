// internal/leaderboard/windows.go
//
// Window boundary helpers. Day, week and month starts are computed in a
// fixed reference timezone; weeks start Monday 00:00, months on day 1.

package leaderboard

import "time"

// DayStart returns midnight of now's day in loc.
func DayStart(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns the most recent Monday 00:00 in loc.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	day := DayStart(now, loc)
	// time.Weekday counts Sunday as 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of now's month, 00:00 in loc.
func MonthStart(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, loc)
}
