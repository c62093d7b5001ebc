package route

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"calendarcorp/src-server/model"
	"calendarcorp/src-server/utils"
)

type AdminEventRespBody struct {
	OneEventRespBody
	CategoryTitle string `json:"categoryTitle,omitempty"`
	CreatedBy     string `json:"createdBy"`
	CreatedAt     int64  `json:"createdAtUnixUTC"`
	ModifiedBy    string `json:"modifiedBy"`
	ModifiedAt    int64  `json:"modifiedAtUnixUTC"`
}

func newAdminEventRespBody(as *utils.AppState, eventModel *model.Event) AdminEventRespBody {
	respBody := AdminEventRespBody{
		OneEventRespBody: newOneEventRespBody(eventModel.ToCalendarEvent(as.Config.GetLocation())),
		CreatedBy:        eventModel.CreatedBy,
		CreatedAt:        eventModel.CreatedAt,
		ModifiedBy:       eventModel.ModifiedBy,
		ModifiedAt:       eventModel.ModifiedAt,
	}
	if eventModel.Category != nil {
		respBody.CategoryTitle = utils.TitleCasePtBr(eventModel.Category.Title)
	}
	return respBody
}

func Admin(muxer *http.ServeMux, as *utils.AppState) {
	type EventReqBody struct {
		Title            string `json:"title"`
		Description      string `json:"description"`
		CategoryID       int64  `json:"categoryId"`
		CostCenterID     int64  `json:"costCenterId"`
		StartDateUnixUTC int64  `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64  `json:"endDateUnixUTC"`
		Active           *bool  `json:"active"`
	}

	type EventPageRespBody struct {
		Items   []AdminEventRespBody `json:"items"`
		Total   int                  `json:"total"`
		Page    int                  `json:"page"`
		PerPage int                  `json:"perPage"`
	}

	type StatusReqBody struct {
		Active bool `json:"active"`
	}

	type CategoryReqBody struct {
		ID           int64  `json:"id"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		Icon         string `json:"icon"`
		Color        string `json:"color"`
		CostCenterID int64  `json:"costCenterId"`
	}

	type CostCenterReqBody struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Unit string `json:"unit"`
	}

	// fills eventModel from the request body, resolving the cost center from
	// the category; returns false after answering the request itself
	applyEventReqBody := func(w http.ResponseWriter, r *http.Request, eventModel *model.Event) bool {
		var reqBody EventReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return false
		}

		category, err := model.GetCategory(r.Context(), as.BunDB, reqBody.CategoryID)
		switch {
		case errors.Is(err, model.ErrCategoryNotFound):
			http.Error(w, "Category not found", http.StatusBadRequest)
			return false
		case err != nil:
			slog.Error("can't get category", "error", err)
			http.Error(w, "Can't get category", http.StatusInternalServerError)
			return false
		}
		if reqBody.CostCenterID != 0 && reqBody.CostCenterID != category.CostCenterID {
			http.Error(w, "Category doesn't belong to the cost center", http.StatusBadRequest)
			return false
		}

		eventModel.Title = utils.CleanupString(reqBody.Title)
		eventModel.Description = reqBody.Description
		eventModel.CategoryID = category.ID
		eventModel.CostCenterID = category.CostCenterID
		eventModel.Category = category
		eventModel.CostCenter = nil
		eventModel.StartDateUnixUTC = reqBody.StartDateUnixUTC
		eventModel.EndDateUnixUTC = reqBody.EndDateUnixUTC
		if reqBody.Active != nil {
			eventModel.Active = *reqBody.Active
		}
		return true
	}

	saveEvent := func(w http.ResponseWriter, r *http.Request, eventModel *model.Event, status int) {
		err := as.Events.Save(r.Context(), eventModel)
		switch {
		case errors.Is(err, model.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			slog.Error("can't save event", "error", err)
			http.Error(w, "Can't save event", http.StatusInternalServerError)
			return
		}
		writeJSON(w, status, newAdminEventRespBody(as, eventModel))
	}

	// paginated list, inactive events included
	muxer.HandleFunc("GET /admin/events", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		page, err := parseOptionalInt(firstValue(values, "pagina", "page"), "page")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		perPage, err := parseOptionalInt(firstValue(values, "porPagina", "per_page"), "per_page")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		categoryID, err := parseOptionalInt(firstValue(values, "categoria", "category"), "category")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter := model.AdminFilter{
			ID:         firstValue(values, "id"),
			Title:      firstValue(values, "titulo", "title"),
			CategoryID: int64(categoryID),
		}
		loc := as.Config.GetLocation()
		if s := firstValue(values, "de", "from"); s != "" {
			if filter.From, err = time.ParseInLocation(time.DateOnly, s, loc); err != nil {
				http.Error(w, "Invalid from date", http.StatusBadRequest)
				return
			}
		}
		if s := firstValue(values, "ate", "to"); s != "" {
			to, err := time.ParseInLocation(time.DateOnly, s, loc)
			if err != nil {
				http.Error(w, "Invalid to date", http.StatusBadRequest)
				return
			}
			filter.To = to.AddDate(0, 0, 1).Add(-time.Second)
		}

		eventPage, err := as.Events.ListPaginated(r.Context(), page, perPage, filter)
		if err != nil {
			slog.Error("can't list events", "error", err)
			http.Error(w, "Can't list events", http.StatusInternalServerError)
			return
		}
		respBody := EventPageRespBody{
			Items:   make([]AdminEventRespBody, 0, len(eventPage.Items)),
			Total:   eventPage.Total,
			Page:    eventPage.Page,
			PerPage: eventPage.PerPage,
		}
		for i := range eventPage.Items {
			respBody.Items = append(respBody.Items, newAdminEventRespBody(as, &eventPage.Items[i]))
		}
		writeJSON(w, http.StatusOK, respBody)
	}))

	muxer.HandleFunc("GET /admin/events/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		eventModel, err := as.Events.GetByID(r.Context(), r.PathValue("id"))
		switch {
		case errors.Is(err, model.ErrEventNotFound):
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		case err != nil:
			slog.Error("can't get event", "error", err)
			http.Error(w, "Can't get event", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, newAdminEventRespBody(as, eventModel))
	}))

	// create an event, active unless told otherwise
	muxer.HandleFunc("POST /admin/events", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		eventModel := &model.Event{Active: true, CreatedBy: actorFrom(r)}
		if !applyEventReqBody(w, r, eventModel) {
			return
		}
		saveEvent(w, r, eventModel, http.StatusCreated)
	}))

	muxer.HandleFunc("PUT /admin/events/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		eventModel, err := as.Events.GetByID(r.Context(), r.PathValue("id"))
		switch {
		case errors.Is(err, model.ErrEventNotFound):
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		case err != nil:
			slog.Error("can't get event", "error", err)
			http.Error(w, "Can't get event", http.StatusInternalServerError)
			return
		}
		if !applyEventReqBody(w, r, eventModel) {
			return
		}
		eventModel.ModifiedBy = actorFrom(r)
		saveEvent(w, r, eventModel, http.StatusOK)
	}))

	muxer.HandleFunc("POST /admin/events/{id}/status", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		var reqBody StatusReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		err := as.Events.SetActive(r.Context(), r.PathValue("id"), reqBody.Active, actorFrom(r))
		switch {
		case errors.Is(err, model.ErrEventNotFound):
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		case err != nil:
			slog.Error("can't change event status", "error", err)
			http.Error(w, "Can't change event status", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	type SummaryRespBody struct {
		model.Summary
		MonthEvents []OneEventRespBody `json:"monthEvents"`
	}
	muxer.HandleFunc("GET /admin/summary", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		summary, err := as.Events.Summarize(r.Context(), as.Now())
		if err != nil {
			slog.Error("can't summarize events", "error", err)
			http.Error(w, "Can't summarize events", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, SummaryRespBody{
			Summary:     summary,
			MonthEvents: newEventList(summary.MonthEvents),
		})
	}))

	muxer.HandleFunc("POST /admin/categories", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		var reqBody CategoryReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		category := model.Category{
			ID:           reqBody.ID,
			Title:        utils.CleanupString(reqBody.Title),
			Description:  reqBody.Description,
			Icon:         reqBody.Icon,
			Color:        reqBody.Color,
			CostCenterID: reqBody.CostCenterID,
		}
		err := category.Upsert(r.Context(), as.BunDB)
		switch {
		case errors.Is(err, model.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			slog.Error("can't save category", "error", err)
			http.Error(w, "Can't save category", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"id": category.ID})
	}))

	muxer.HandleFunc("POST /admin/cost-centers", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		var reqBody CostCenterReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		costCenter := model.CostCenter{
			ID:   reqBody.ID,
			Name: utils.CleanupString(reqBody.Name),
			Unit: reqBody.Unit,
		}
		err := costCenter.Upsert(r.Context(), as.BunDB)
		switch {
		case errors.Is(err, model.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			slog.Error("can't save cost center", "error", err)
			http.Error(w, "Can't save cost center", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"id": costCenter.ID})
	}))
}
