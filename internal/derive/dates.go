package derive

import "time"

// Calendar comparisons are done in now's location at day granularity.

func sameDay(t, now time.Time) bool {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameWeek reports whether t falls in the calendar week containing now.
// Weeks start on Sunday.
func sameWeek(t, now time.Time) bool {
	start := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 7)
	t = t.In(now.Location())
	return !t.Before(start) && t.Before(end)
}

func sameMonth(t, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// IsOverdue reports whether due lies strictly in the past and not today.
// A due date earlier today is never overdue: overdue is a day-granularity
// notion, not a time-of-day one.
func IsOverdue(due, now time.Time) bool {
	return due.Before(now) && !sameDay(due, now)
}
