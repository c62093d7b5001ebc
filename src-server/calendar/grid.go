package calendar

import (
	"fmt"
	"strings"
	"time"
)

type ViewMode int

const (
	Monthly ViewMode = iota
	Weekly
	Daily
)

func (m ViewMode) String() string {
	switch m {
	case Monthly:
		return "monthly"
	case Weekly:
		return "weekly"
	case Daily:
		return "daily"
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

// ParseViewMode accepts the English names and the Portuguese ones used by the
// old query strings. An empty string means Monthly.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly", "month", "mensal":
		return Monthly, nil
	case "weekly", "week", "semanal":
		return Weekly, nil
	case "daily", "day", "diaria", "diária":
		return Daily, nil
	}
	return Monthly, fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
}

// Day is one cell of a grid. A zero Date marks a filler cell that only pads
// the first week of a monthly grid.
type Day struct {
	Date   time.Time
	Events []Event
}

func (d Day) IsFiller() bool {
	return d.Date.IsZero()
}

// View is a grid plus the values a page needs to render it.
type View struct {
	Mode           ViewMode
	Reference      time.Time
	OnlyWithEvents bool
	Days           []Day
	WeekStart      time.Time
	WeekEnd        time.Time
}

// BuildGrid lays events out on day cells for the given mode.
//
// onlyDaysWithEvents drops empty cells in Weekly and Daily mode only. A
// monthly grid always holds LeadingBlanks(ref) fillers followed by every day
// of the month.
func BuildGrid(events []Event, ref time.Time, mode ViewMode, onlyDaysWithEvents bool) ([]Day, error) {
	if err := validateAll(events); err != nil {
		return nil, err
	}

	switch mode {
	case Weekly:
		start, _ := WeekBounds(ref)
		days := make([]Day, 0, 7)
		for i := 0; i < 7; i++ {
			day := dayAt(start, i, events)
			if onlyDaysWithEvents && len(day.Events) == 0 {
				continue
			}
			days = append(days, day)
		}
		return days, nil

	case Daily:
		day := dayAt(midnight(ref), 0, events)
		if onlyDaysWithEvents && len(day.Events) == 0 {
			return []Day{}, nil
		}
		return []Day{day}, nil

	case Monthly:
		first := firstOfMonth(ref)
		blanks := weekdayIndex(first)
		count := DaysInMonth(ref)
		days := make([]Day, 0, blanks+count)
		for i := 0; i < blanks; i++ {
			days = append(days, Day{Events: []Event{}})
		}
		for i := 0; i < count; i++ {
			days = append(days, dayAt(first, i, events))
		}
		return days, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidViewMode, mode)
}

// BuildView runs BuildGrid and fills in the week bounds. Outside Weekly mode
// both bounds are the reference date.
func BuildView(events []Event, ref time.Time, mode ViewMode, onlyDaysWithEvents bool) (View, error) {
	days, err := BuildGrid(events, ref, mode, onlyDaysWithEvents)
	if err != nil {
		return View{}, err
	}
	view := View{
		Mode:           mode,
		Reference:      ref,
		OnlyWithEvents: onlyDaysWithEvents,
		Days:           days,
		WeekStart:      ref,
		WeekEnd:        ref,
	}
	if mode == Weekly {
		view.WeekStart, view.WeekEnd = WeekBounds(ref)
	}
	return view, nil
}

// dayAt builds the cell offset days after base. The date is rebuilt from its
// parts so a zone that skips midnight doesn't shift later cells.
func dayAt(base time.Time, offset int, events []Event) Day {
	date := time.Date(base.Year(), base.Month(), base.Day()+offset, 0, 0, 0, 0, base.Location())
	matched := make([]Event, 0)
	for _, event := range events {
		if event.OccursOn(date) {
			matched = append(matched, event)
		}
	}
	return Day{Date: date, Events: matched}
}
