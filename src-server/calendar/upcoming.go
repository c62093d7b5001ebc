package calendar

import (
	"slices"
	"time"
)

const (
	UpcomingLimit      = 10
	UpcomingWindowDays = 10
)

// SelectUpcoming returns the events starting between today and ten days
// later, both inclusive, earliest first and at most UpcomingLimit of them.
// Events with the same start keep their input order.
//
// today is used as given; callers pass midnight of the current day.
func SelectUpcoming(events []Event, today time.Time) []Event {
	until := today.AddDate(0, 0, UpcomingWindowDays)

	selected := make([]Event, 0, min(len(events), UpcomingLimit))
	for _, event := range events {
		if event.Start.Before(today) || event.Start.After(until) {
			continue
		}
		selected = append(selected, event)
	}

	slices.SortStableFunc(selected, func(a, b Event) int {
		return a.Start.Compare(b.Start)
	})

	if len(selected) > UpcomingLimit {
		selected = selected[:UpcomingLimit]
	}
	return selected
}
