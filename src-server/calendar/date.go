package calendar

import "time"

// WeekStart is the first column of every grid.
const WeekStart = time.Sunday

// weekdayIndex is the column of t in a week starting on WeekStart, 0..6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) - int(WeekStart) + 7) % 7
}

// dateOf drops the time of day, keeping the calendar date t has in its own
// location. The result is midnight UTC so dates from different zones compare
// as plain dates.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// midnight is the start of t's calendar date in t's location.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func lastOfMonth(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days of t's month.
func DaysInMonth(t time.Time) int {
	return lastOfMonth(t).Day()
}

// LeadingBlanks is the number of filler cells placed before the first day of
// t's month in a monthly grid.
func LeadingBlanks(t time.Time) int {
	return weekdayIndex(firstOfMonth(t))
}

// WeekBounds returns the first and last date of the week containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	start := midnight(t).AddDate(0, 0, -weekdayIndex(t))
	return start, start.AddDate(0, 0, 6)
}
