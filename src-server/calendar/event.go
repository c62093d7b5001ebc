// Package calendar builds the day grids, the upcoming-events list and the
// reference dates used by the corporate calendar views.
//
// Everything in here is pure: functions read their arguments and allocate
// fresh results, so they can be called from any number of requests at once.
package calendar

import "time"

// Event is a read-only snapshot of a calendar event handed over by the data
// access layer.
type Event struct {
	ID          string
	Title       string
	Description string // blank means absent

	CategoryID   int64
	CostCenterID int64

	Start time.Time
	End   time.Time

	Active bool

	CreatedBy  string
	CreatedAt  time.Time
	ModifiedBy string
	ModifiedAt time.Time
}

// Validate reports a DataIntegrityError when the event ends before it starts.
func (e Event) Validate() error {
	if e.Start.After(e.End) {
		return &DataIntegrityError{EventID: e.ID, Start: e.Start, End: e.End}
	}
	return nil
}

// OccursOn reports whether the event covers the calendar date of day. Both
// ends are inclusive and the time of day is ignored.
func (e Event) OccursOn(day time.Time) bool {
	d := dateOf(day)
	return !d.Before(dateOf(e.Start)) && !d.After(dateOf(e.End))
}

func validateAll(events []Event) error {
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return err
		}
	}
	return nil
}
