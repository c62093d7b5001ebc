package route

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"calendarcorp/src-server/calendar"
	"calendarcorp/src-server/model"
	"calendarcorp/src-server/utils"
)

type OneEventRespBody struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	CategoryID       int64  `json:"categoryId"`
	CostCenterID     int64  `json:"costCenterId"`
	StartDateUnixUTC int64  `json:"startDateUnixUTC"`
	EndDateUnixUTC   int64  `json:"endDateUnixUTC"`
	Active           bool   `json:"active"`
}

func newOneEventRespBody(e calendar.Event) OneEventRespBody {
	return OneEventRespBody{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		CategoryID:       e.CategoryID,
		CostCenterID:     e.CostCenterID,
		StartDateUnixUTC: e.Start.Unix(),
		EndDateUnixUTC:   e.End.Unix(),
		Active:           e.Active,
	}
}

func newEventList(events []calendar.Event) []OneEventRespBody {
	out := make([]OneEventRespBody, 0, len(events))
	for _, e := range events {
		out = append(out, newOneEventRespBody(e))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("can't write to response", "error", err)
	}
}

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	type DayRespBody struct {
		Date   string             `json:"date"` // YYYY-MM-DD, empty for fillers
		Events []OneEventRespBody `json:"events"`
	}

	type CategoryRespBody struct {
		ID           int64  `json:"id"`
		Title        string `json:"title"`
		Icon         string `json:"icon"`
		Color        string `json:"color"`
		CostCenterID int64  `json:"costCenterId"`
	}

	type CostCenterRespBody struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Unit string `json:"unit"`
	}

	type CalendarRespBody struct {
		View           string               `json:"view"`
		Reference      string               `json:"reference"`
		OnlyWithEvents bool                 `json:"onlyWithEvents"`
		WeekStart      string               `json:"weekStart"`
		WeekEnd        string               `json:"weekEnd"`
		Days           []DayRespBody        `json:"days"`
		Upcoming       []OneEventRespBody   `json:"upcoming"`
		Categories     []CategoryRespBody   `json:"categories"`
		CostCenters    []CostCenterRespBody `json:"costCenters"`
	}

	muxer.HandleFunc("GET /calendar", func(w http.ResponseWriter, r *http.Request) {
		now := as.Now()
		q, err := ParseCalendarQuery(as, r.URL.Query(), now)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// #region - grid
		events, err := as.Events.FetchEvents(r.Context(), calendar.PeriodFor(q.Mode, q.Reference), q.Filter)
		if err != nil {
			slog.Error("can't fetch events", "error", err)
			http.Error(w, "Can't get events", http.StatusInternalServerError)
			return
		}
		view, err := calendar.BuildView(events, q.Reference, q.Mode, q.OnlyWithEvents)
		if err != nil {
			if errors.Is(err, calendar.ErrDataIntegrity) {
				slog.Error("stored event breaks start <= end", "error", err)
			}
			http.Error(w, "Can't build calendar", http.StatusInternalServerError)
			return
		}
		// #endregion

		// #region - upcoming
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		upcomingEvents, err := as.Events.FetchEvents(r.Context(), calendar.Period{
			From: today,
			To:   today.AddDate(0, 0, calendar.UpcomingWindowDays),
		}, q.Filter)
		if err != nil {
			slog.Error("can't fetch upcoming events", "error", err)
			http.Error(w, "Can't get events", http.StatusInternalServerError)
			return
		}
		// #endregion

		// #region - side lists
		categories, err := model.ListCategories(r.Context(), as.BunDB, q.Filter.CostCenterID)
		if err != nil {
			slog.Error("can't list categories", "error", err)
			http.Error(w, "Can't get categories", http.StatusInternalServerError)
			return
		}
		costCenters, err := model.ListCostCentersWithEvents(r.Context(), as.BunDB)
		if err != nil {
			slog.Error("can't list cost centers", "error", err)
			http.Error(w, "Can't get cost centers", http.StatusInternalServerError)
			return
		}
		// #endregion

		respBody := CalendarRespBody{
			View:           view.Mode.String(),
			Reference:      view.Reference.Format(time.DateOnly),
			OnlyWithEvents: view.OnlyWithEvents,
			WeekStart:      view.WeekStart.Format(time.DateOnly),
			WeekEnd:        view.WeekEnd.Format(time.DateOnly),
			Days:           make([]DayRespBody, 0, len(view.Days)),
			Upcoming:       newEventList(calendar.SelectUpcoming(upcomingEvents, today)),
			Categories:     make([]CategoryRespBody, 0, len(categories)),
			CostCenters:    make([]CostCenterRespBody, 0, len(costCenters)),
		}
		for _, day := range view.Days {
			dayRespBody := DayRespBody{Events: newEventList(day.Events)}
			if !day.IsFiller() {
				dayRespBody.Date = day.Date.Format(time.DateOnly)
			}
			respBody.Days = append(respBody.Days, dayRespBody)
		}
		for _, c := range categories {
			respBody.Categories = append(respBody.Categories, CategoryRespBody{
				ID:           c.ID,
				Title:        utils.TitleCasePtBr(c.Title),
				Icon:         c.Icon,
				Color:        c.Color,
				CostCenterID: c.CostCenterID,
			})
		}
		for _, cc := range costCenters {
			respBody.CostCenters = append(respBody.CostCenters, CostCenterRespBody{
				ID:   cc.ID,
				Name: utils.TitleCasePtBr(cc.Name),
				Unit: cc.Unit,
			})
		}

		writeJSON(w, http.StatusOK, respBody)
	})
}
