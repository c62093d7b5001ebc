package calendar

import (
	"context"
	"fmt"
	"time"
)

// Period is an inclusive range of calendar dates.
type Period struct {
	From time.Time
	To   time.Time
}

// Bounds returns the first instant of From and the last instant of To.
func (p Period) Bounds() (time.Time, time.Time) {
	from := midnight(p.From)
	to := time.Date(p.To.Year(), p.To.Month(), p.To.Day()+1, 0, 0, 0, 0, p.To.Location()).Add(-time.Second)
	return from, to
}

// PeriodFor returns the dates a view of the given mode covers.
func PeriodFor(mode ViewMode, ref time.Time) Period {
	switch mode {
	case Weekly:
		start, end := WeekBounds(ref)
		return Period{From: start, To: end}
	case Daily:
		day := midnight(ref)
		return Period{From: day, To: day}
	default:
		return Period{From: firstOfMonth(ref), To: lastOfMonth(ref)}
	}
}

// Filter narrows the events fetched for a period. A nil or empty field
// doesn't filter.
type Filter struct {
	CategoryIDs  []int64
	CostCenterID *int64
}

// EventSource fetches the active events overlapping a period that match a
// filter, ordered by start.
type EventSource interface {
	FetchEvents(ctx context.Context, period Period, filter Filter) ([]Event, error)
}

// ResolveReferenceDate picks the date a request is anchored on: date when set,
// otherwise the first of the given (or current) year and month. A zero year
// or month means "not given". The result is midnight in today's location.
func ResolveReferenceDate(year, month int, date *time.Time, today time.Time) (time.Time, error) {
	if date != nil {
		if date.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero date", ErrInvalidReferenceDate)
		}
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location()), nil
	}

	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}
	switch {
	case year < 1 || year > 9999:
		return time.Time{}, fmt.Errorf("%w: year %d", ErrInvalidReferenceDate, year)
	case month < 1 || month > 12:
		return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidReferenceDate, month)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, today.Location()), nil
}
