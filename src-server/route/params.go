package route

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"calendarcorp/src-server/calendar"
	"calendarcorp/src-server/utils"
)

var errBadQuery = errors.New("bad query")

// CalendarQuery is what the public calendar routes read from the URL. Every
// parameter has a Portuguese and an English name.
type CalendarQuery struct {
	Reference      time.Time
	Mode           calendar.ViewMode
	OnlyWithEvents bool
	Filter         calendar.Filter
}

func firstValue(values url.Values, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(values.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

func allValues(values url.Values, names ...string) []string {
	out := make([]string, 0)
	for _, name := range names {
		for _, v := range values[name] {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
	}
	return out
}

func parseOptionalInt(s, name string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", errBadQuery, name, s)
	}
	return n, nil
}

// parseDate reads an ISO date first and falls back to natural language
// ("next friday", "tomorrow") relative to now.
func parseDate(as *utils.AppState, s string, now time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(now.Location()), nil
	}
	result, err := as.When.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", calendar.ErrInvalidReferenceDate, s, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("%w: can't read %q as a date", calendar.ErrInvalidReferenceDate, s)
	}
	return result.Time.In(now.Location()), nil
}

// ParseCalendarQuery resolves the reference date, view and filters of a
// request.
func ParseCalendarQuery(as *utils.AppState, values url.Values, now time.Time) (CalendarQuery, error) {
	var q CalendarQuery

	year, err := parseOptionalInt(firstValue(values, "ano", "year"), "year")
	if err != nil {
		return q, err
	}
	month, err := parseOptionalInt(firstValue(values, "mes", "month"), "month")
	if err != nil {
		return q, err
	}
	var date *time.Time
	if s := firstValue(values, "data", "date"); s != "" {
		t, err := parseDate(as, s, now)
		if err != nil {
			return q, err
		}
		date = &t
	}
	if q.Reference, err = calendar.ResolveReferenceDate(year, month, date, now); err != nil {
		return q, err
	}

	if q.Mode, err = calendar.ParseViewMode(firstValue(values, "tipo", "view")); err != nil {
		return q, err
	}

	if s := firstValue(values, "somenteComEventos", "only_with_events"); s != "" {
		if q.OnlyWithEvents, err = strconv.ParseBool(s); err != nil {
			return q, fmt.Errorf("%w: only_with_events %q is not a boolean", errBadQuery, s)
		}
	}

	for _, s := range allValues(values, "categorias", "categories") {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return q, fmt.Errorf("%w: category %q is not a number", errBadQuery, s)
		}
		q.Filter.CategoryIDs = append(q.Filter.CategoryIDs, id)
	}
	if s := firstValue(values, "cdCentroCusto", "cost_center"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return q, fmt.Errorf("%w: cost center %q is not a number", errBadQuery, s)
		}
		q.Filter.CostCenterID = &id
	}

	return q, nil
}
