package calendar_test

import (
	"errors"
	"testing"
	"time"

	"calendarcorp/src-server/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func event(id string, start, end time.Time) calendar.Event {
	return calendar.Event{ID: id, Title: id, Start: start, End: end, Active: true}
}

func eventIDs(events []calendar.Event) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestMonthlyGridLeapFebruary(t *testing.T) {
	days, err := calendar.BuildGrid(nil, date(2024, time.February, 1), calendar.Monthly, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := calendar.LeadingBlanks(date(2024, time.February, 1)); got != 4 {
		t.Errorf("leading blanks = %d, want 4", got)
	}
	if len(days) != 33 {
		t.Fatalf("len(days) = %d, want 33", len(days))
	}
	for i := 0; i < 4; i++ {
		if !days[i].IsFiller() {
			t.Errorf("days[%d] should be a filler cell", i)
		}
		if len(days[i].Events) != 0 {
			t.Errorf("filler days[%d] has events", i)
		}
	}
	if got := days[4].Date; !got.Equal(date(2024, time.February, 1)) {
		t.Errorf("first real day = %v", got)
	}
	if got := days[32].Date; !got.Equal(date(2024, time.February, 29)) {
		t.Errorf("last day = %v", got)
	}
}

func TestMonthlyGridCellCountForEveryMonth(t *testing.T) {
	for year := 1999; year <= 2031; year++ {
		for month := time.January; month <= time.December; month++ {
			// any day of the month anchors the same grid
			ref := date(year, month, 17)
			days, err := calendar.BuildGrid(nil, ref, calendar.Monthly, false)
			if err != nil {
				t.Fatal(err)
			}
			blanks := calendar.LeadingBlanks(ref)
			if blanks < 0 || blanks > 6 {
				t.Fatalf("%d-%02d: leading blanks %d out of range", year, month, blanks)
			}
			if want := blanks + calendar.DaysInMonth(ref); len(days) != want {
				t.Fatalf("%d-%02d: len(days) = %d, want %d", year, month, len(days), want)
			}
			if first := days[blanks].Date; first.Weekday() != time.Weekday((int(calendar.WeekStart)+blanks)%7) {
				t.Fatalf("%d-%02d: first day lands on %s", year, month, first.Weekday())
			}
			for i := blanks; i < len(days); i++ {
				if days[i].IsFiller() {
					t.Fatalf("%d-%02d: days[%d] is a filler after the first day", year, month, i)
				}
			}
		}
	}
}

func TestMonthlyGridIgnoresOnlyDaysWithEvents(t *testing.T) {
	events := []calendar.Event{event("a", date(2024, time.February, 10), date(2024, time.February, 10))}
	days, err := calendar.BuildGrid(events, date(2024, time.February, 1), calendar.Monthly, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 33 {
		t.Fatalf("len(days) = %d, want 33", len(days))
	}
}

func TestMultiDayEventMembership(t *testing.T) {
	span := event("span",
		time.Date(2024, time.January, 30, 18, 30, 0, 0, time.UTC),
		time.Date(2024, time.February, 2, 8, 0, 0, 0, time.UTC))

	days, err := calendar.BuildGrid([]calendar.Event{span}, date(2024, time.January, 31), calendar.Weekly, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}

	want := map[time.Time]bool{
		date(2024, time.January, 30): true,
		date(2024, time.January, 31): true,
		date(2024, time.February, 1): true,
		date(2024, time.February, 2): true,
	}
	for _, day := range days {
		has := len(day.Events) == 1
		if has != want[day.Date] {
			t.Errorf("%s: has event = %v, want %v", day.Date.Format(time.DateOnly), has, want[day.Date])
		}
	}

	month, err := calendar.BuildGrid([]calendar.Event{span}, date(2024, time.February, 1), calendar.Monthly, false)
	if err != nil {
		t.Fatal(err)
	}
	var covered []string
	for _, day := range month {
		if len(day.Events) > 0 {
			covered = append(covered, day.Date.Format(time.DateOnly))
		}
	}
	if len(covered) != 2 || covered[0] != "2024-02-01" || covered[1] != "2024-02-02" {
		t.Errorf("february cells with the event = %v", covered)
	}
}

func TestMembershipMatchesDateRange(t *testing.T) {
	events := []calendar.Event{
		event("one-day", time.Date(2024, time.May, 3, 9, 0, 0, 0, time.UTC), time.Date(2024, time.May, 3, 10, 0, 0, 0, time.UTC)),
		event("late-to-early", time.Date(2024, time.May, 7, 23, 59, 0, 0, time.UTC), time.Date(2024, time.May, 8, 0, 1, 0, 0, time.UTC)),
		event("long", time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC), time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)),
		event("instant", time.Date(2024, time.May, 31, 12, 0, 0, 0, time.UTC), time.Date(2024, time.May, 31, 12, 0, 0, 0, time.UTC)),
	}
	days, err := calendar.BuildGrid(events, date(2024, time.May, 1), calendar.Monthly, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, day := range days {
		if day.IsFiller() {
			continue
		}
		in := make(map[string]bool)
		for _, e := range day.Events {
			in[e.ID] = true
		}
		for _, e := range events {
			startDay := date(e.Start.Year(), e.Start.Month(), e.Start.Day())
			endDay := date(e.End.Year(), e.End.Month(), e.End.Day())
			want := !day.Date.Before(startDay) && !day.Date.After(endDay)
			if in[e.ID] != want {
				t.Errorf("%s on %s: member = %v, want %v", e.ID, day.Date.Format(time.DateOnly), in[e.ID], want)
			}
		}
	}
}

func TestMembershipUsesLocalDate(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	// 22:00 in Brasília is already the next day in UTC
	late := event("late", time.Date(2024, time.March, 10, 22, 0, 0, 0, brt), time.Date(2024, time.March, 10, 23, 0, 0, 0, brt))

	days, err := calendar.BuildGrid([]calendar.Event{late}, time.Date(2024, time.March, 10, 0, 0, 0, 0, brt), calendar.Daily, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || len(days[0].Events) != 1 {
		t.Fatalf("expected the event on March 10, got %+v", days)
	}

	days, err = calendar.BuildGrid([]calendar.Event{late}, time.Date(2024, time.March, 11, 0, 0, 0, 0, brt), calendar.Daily, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no cell for March 11, got %d", len(days))
	}
}

func TestPerDayOrderFollowsInput(t *testing.T) {
	events := []calendar.Event{
		event("c", time.Date(2024, time.July, 4, 15, 0, 0, 0, time.UTC), time.Date(2024, time.July, 4, 16, 0, 0, 0, time.UTC)),
		event("a", time.Date(2024, time.July, 4, 8, 0, 0, 0, time.UTC), time.Date(2024, time.July, 4, 9, 0, 0, 0, time.UTC)),
		event("b", time.Date(2024, time.July, 1, 8, 0, 0, 0, time.UTC), time.Date(2024, time.July, 5, 9, 0, 0, 0, time.UTC)),
	}
	days, err := calendar.BuildGrid(events, date(2024, time.July, 4), calendar.Daily, false)
	if err != nil {
		t.Fatal(err)
	}
	got := eventIDs(days[0].Events)
	if len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Errorf("order = %v, want [c a b]", got)
	}
}

func TestWeeklyGrid(t *testing.T) {
	events := []calendar.Event{
		event("tue", time.Date(2024, time.September, 10, 9, 0, 0, 0, time.UTC), time.Date(2024, time.September, 10, 10, 0, 0, 0, time.UTC)),
		event("fri", time.Date(2024, time.September, 13, 9, 0, 0, 0, time.UTC), time.Date(2024, time.September, 13, 10, 0, 0, 0, time.UTC)),
	}

	tests := []struct {
		name     string
		ref      time.Time
		only     bool
		wantDays []string
	}{
		{
			name:     "sunday reference",
			ref:      date(2024, time.September, 8),
			wantDays: []string{"2024-09-08", "2024-09-09", "2024-09-10", "2024-09-11", "2024-09-12", "2024-09-13", "2024-09-14"},
		},
		{
			name:     "saturday reference",
			ref:      date(2024, time.September, 14),
			wantDays: []string{"2024-09-08", "2024-09-09", "2024-09-10", "2024-09-11", "2024-09-12", "2024-09-13", "2024-09-14"},
		},
		{
			name:     "only days with events",
			ref:      date(2024, time.September, 11),
			only:     true,
			wantDays: []string{"2024-09-10", "2024-09-13"},
		},
		{
			name:     "week across a month boundary",
			ref:      date(2024, time.October, 1),
			wantDays: []string{"2024-09-29", "2024-09-30", "2024-10-01", "2024-10-02", "2024-10-03", "2024-10-04", "2024-10-05"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := calendar.BuildGrid(events, tt.ref, calendar.Weekly, tt.only)
			if err != nil {
				t.Fatal(err)
			}
			if len(days) != len(tt.wantDays) {
				t.Fatalf("len(days) = %d, want %d", len(days), len(tt.wantDays))
			}
			for i, day := range days {
				if day.IsFiller() {
					t.Errorf("days[%d] is a filler", i)
				}
				if got := day.Date.Format(time.DateOnly); got != tt.wantDays[i] {
					t.Errorf("days[%d] = %s, want %s", i, got, tt.wantDays[i])
				}
			}
		})
	}
}

func TestDailyGrid(t *testing.T) {
	events := []calendar.Event{
		event("x", time.Date(2024, time.December, 24, 20, 0, 0, 0, time.UTC), time.Date(2024, time.December, 25, 2, 0, 0, 0, time.UTC)),
	}

	tests := []struct {
		name       string
		ref        time.Time
		only       bool
		wantCells  int
		wantEvents int
	}{
		{"covered day", date(2024, time.December, 25), false, 1, 1},
		{"covered day, only with events", date(2024, time.December, 25), true, 1, 1},
		{"empty day", date(2024, time.December, 26), false, 1, 0},
		{"empty day, only with events", date(2024, time.December, 26), true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := calendar.BuildGrid(events, tt.ref, calendar.Daily, tt.only)
			if err != nil {
				t.Fatal(err)
			}
			if len(days) != tt.wantCells {
				t.Fatalf("len(days) = %d, want %d", len(days), tt.wantCells)
			}
			if tt.wantCells == 1 && len(days[0].Events) != tt.wantEvents {
				t.Errorf("events = %d, want %d", len(days[0].Events), tt.wantEvents)
			}
		})
	}
}

func TestEmptyEventList(t *testing.T) {
	for _, mode := range []calendar.ViewMode{calendar.Monthly, calendar.Weekly, calendar.Daily} {
		days, err := calendar.BuildGrid([]calendar.Event{}, date(2025, time.June, 15), mode, false)
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		for _, day := range days {
			if len(day.Events) != 0 {
				t.Errorf("%s: unexpected events on %v", mode, day.Date)
			}
		}
	}
}

func TestInvertedEventIsDataIntegrityError(t *testing.T) {
	bad := event("bad", date(2024, time.March, 5), date(2024, time.March, 4))
	_, err := calendar.BuildGrid([]calendar.Event{bad}, date(2024, time.March, 1), calendar.Monthly, false)
	if !errors.Is(err, calendar.ErrDataIntegrity) {
		t.Fatalf("err = %v, want ErrDataIntegrity", err)
	}
	var integrityErr *calendar.DataIntegrityError
	if !errors.As(err, &integrityErr) || integrityErr.EventID != "bad" {
		t.Fatalf("err = %#v, want *DataIntegrityError for bad", err)
	}
}

func TestBuildViewWeekBounds(t *testing.T) {
	ref := date(2024, time.February, 1)

	view, err := calendar.BuildView(nil, ref, calendar.Weekly, false)
	if err != nil {
		t.Fatal(err)
	}
	if !view.WeekStart.Equal(date(2024, time.January, 28)) || !view.WeekEnd.Equal(date(2024, time.February, 3)) {
		t.Errorf("week bounds = %v..%v", view.WeekStart, view.WeekEnd)
	}

	view, err = calendar.BuildView(nil, ref, calendar.Monthly, false)
	if err != nil {
		t.Fatal(err)
	}
	if !view.WeekStart.Equal(ref) || !view.WeekEnd.Equal(ref) {
		t.Errorf("monthly week bounds = %v..%v, want the reference date", view.WeekStart, view.WeekEnd)
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in      string
		want    calendar.ViewMode
		wantErr bool
	}{
		{"", calendar.Monthly, false},
		{"Mensal", calendar.Monthly, false},
		{"weekly", calendar.Weekly, false},
		{"semanal", calendar.Weekly, false},
		{" DAILY ", calendar.Daily, false},
		{"diaria", calendar.Daily, false},
		{"yearly", calendar.Monthly, true},
	}
	for _, tt := range tests {
		got, err := calendar.ParseViewMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseViewMode(%q) err = %v", tt.in, err)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, calendar.ErrInvalidViewMode) {
				t.Errorf("ParseViewMode(%q) err = %v, want ErrInvalidViewMode", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseViewMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
