package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDataIntegrity marks events that break the start <= end invariant.
	ErrDataIntegrity = errors.New("event data integrity violated")
	// ErrEmptyExportSet is returned when an export is asked for zero events.
	ErrEmptyExportSet = errors.New("no events to export")
	// ErrInvalidReferenceDate is returned when a reference date can't be
	// resolved to a concrete date.
	ErrInvalidReferenceDate = errors.New("invalid reference date")
	// ErrInvalidViewMode is returned for an unknown view name.
	ErrInvalidViewMode = errors.New("invalid view mode")
)

// DataIntegrityError carries the offending event.
type DataIntegrityError struct {
	EventID string
	Start   time.Time
	End     time.Time
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("event %q starts at %s, after it ends at %s",
		e.EventID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *DataIntegrityError) Unwrap() error {
	return ErrDataIntegrity
}
