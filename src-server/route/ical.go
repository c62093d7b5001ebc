package route

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"calendarcorp/src-server/calendar"
	"calendarcorp/src-server/ical"
	"calendarcorp/src-server/utils"
)

// Ical serves the month of the reference date as an .ics download, with the
// same filters as the calendar view.
func Ical(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /calendar/export.ics", func(w http.ResponseWriter, r *http.Request) {
		q, err := ParseCalendarQuery(as, r.URL.Query(), as.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		events, err := as.Events.FetchEvents(r.Context(), calendar.PeriodFor(calendar.Monthly, q.Reference), q.Filter)
		if err != nil {
			slog.Error("can't fetch events", "error", err)
			http.Error(w, "Can't get events", http.StatusInternalServerError)
			return
		}

		startTimer := time.Now()
		out, err := as.Exporter.Export(events)
		switch {
		case errors.Is(err, calendar.ErrEmptyExportSet):
			http.Error(w, "Nenhum evento para exportar.", http.StatusBadRequest)
			return
		case err != nil:
			slog.Error("can't export events", "error", err)
			http.Error(w, "Can't export events", http.StatusInternalServerError)
			return
		}
		utils.Observe(as.MetricChans.IcsExport, time.Since(startTimer))

		w.Header().Set("Content-Type", ical.ContentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="calendario-%s.ics"`, q.Reference.Format("2006-01")))
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, out); err != nil {
			slog.Warn("can't write to response", "where", "route/ical.go", "err", err)
		}
	})
}
