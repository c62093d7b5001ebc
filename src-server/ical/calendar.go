// The `ical` package serializes calendar events into iCalendar text.
//
// # References:
// - RFC5545: https://datatracker.ietf.org/doc/html/rfc5545
//
// # Notes:
// - Only the VCALENDAR/VEVENT subset below is produced. There is no line
//   folding, no RRULE and no VTIMEZONE; every datetime is written in UTC.
// - UID and DTSTAMP are per-export metadata, so exporting the same events
//   twice gives different text.
//
// # Example usage:
//
//	exporter := ical.NewExporter("-//Calendario Corporativo//PT-BR", "calendarcorp")
//	output, err := exporter.Export(events)
//
// Pin the generated values in tests
//
//	exporter.NewUID = func() string { return "fixed" }
//	exporter.Now = func() time.Time { return someTime }

package ical

import (
	"strings"
	"time"

	"calendarcorp/src-server/calendar"

	"github.com/google/uuid"
)

const (
	DefaultProdID    = "-//Calendario Corporativo//PT-BR"
	DefaultUIDDomain = "calendarcorp"
	ContentType      = "text/calendar; charset=utf-8"

	crlf = "\r\n"
)

// Exporter writes events as an iCalendar document. NewUID and Now are the
// sources of the per-export UID and DTSTAMP values.
type Exporter struct {
	ProdID    string
	UIDDomain string
	NewUID    func() string
	Now       func() time.Time
}

// Initialize an Exporter with random UIDs and the wall clock. Blank arguments
// fall back to DefaultProdID and DefaultUIDDomain.
func NewExporter(prodID, uidDomain string) *Exporter {
	if prodID == "" {
		prodID = DefaultProdID
	}
	if uidDomain == "" {
		uidDomain = DefaultUIDDomain
	}
	return &Exporter{
		ProdID:    prodID,
		UIDDomain: uidDomain,
		NewUID:    uuid.NewString,
		Now:       time.Now,
	}
}

// Export serializes events, one VEVENT each, in input order.
//
// It fails with calendar.ErrEmptyExportSet for an empty list and with a
// *calendar.DataIntegrityError if any event ends before it starts; nothing is
// produced in either case.
func (x *Exporter) Export(events []calendar.Event) (string, error) {
	if len(events) == 0 {
		return "", calendar.ErrEmptyExportSet
	}
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return "", err
		}
	}

	stamp := FormatDateTime(x.Now())

	var sb strings.Builder
	writeLine := func(line string) {
		sb.WriteString(line)
		sb.WriteString(crlf)
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:" + x.ProdID)
	for _, event := range events {
		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + x.NewUID() + "@" + x.UIDDomain)
		writeLine("DTSTAMP:" + stamp)
		writeLine("DTSTART:" + FormatDateTime(event.Start))
		writeLine("DTEND:" + FormatDateTime(event.End))
		writeLine("SUMMARY:" + EscapeText(event.Title))
		writeLine("DESCRIPTION:" + EscapeText(event.Description))
		writeLine("END:VEVENT")
	}
	writeLine("END:VCALENDAR")

	return sb.String(), nil
}
