package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"calendarcorp/src-server/calendar"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrEventNotFound = errors.New("event not found")

// EventStore reads and writes events. OnRead and OnWrite, when set, receive
// the latency of every query.
type EventStore struct {
	DB       bun.IDB
	Location *time.Location

	OnRead  func(time.Duration)
	OnWrite func(time.Duration)
}

var _ calendar.EventSource = (*EventStore)(nil)

func NewEventStore(db bun.IDB, loc *time.Location) *EventStore {
	if loc == nil {
		loc = time.Local
	}
	return &EventStore{DB: db, Location: loc}
}

func (s *EventStore) observeRead(start time.Time) {
	if s.OnRead != nil {
		s.OnRead(time.Since(start))
	}
}

func (s *EventStore) observeWrite(start time.Time) {
	if s.OnWrite != nil {
		s.OnWrite(time.Since(start))
	}
}

func (s *EventStore) toCalendarEvents(eventModels []Event) []calendar.Event {
	events := make([]calendar.Event, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, eventModels[i].ToCalendarEvent(s.Location))
	}
	return events
}

// FetchEvents returns the active events overlapping period, ordered by start
// then title. Category and cost center filters apply together.
func (s *EventStore) FetchEvents(ctx context.Context, period calendar.Period, filter calendar.Filter) ([]calendar.Event, error) {
	from, to := period.Bounds()

	startTimer := time.Now()
	eventModels := make([]Event, 0)
	query := s.DB.NewSelect().
		Model(&eventModels).
		Where("e.active = ?", true).
		Where("e.start_date <= ?", to.Unix()).
		Where("e.end_date >= ?", from.Unix())
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("e.category_id IN (?)", bun.In(filter.CategoryIDs))
	}
	if filter.CostCenterID != nil {
		query = query.Where("e.cost_center_id = ?", *filter.CostCenterID)
	}
	if err := query.
		Order("e.start_date ASC", "e.title ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*EventStore).FetchEvents: %w", err)
	}
	s.observeRead(startTimer)

	return s.toCalendarEvents(eventModels), nil
}

// AdminFilter narrows the admin listing. Zero fields don't filter.
type AdminFilter struct {
	ID         string
	Title      string // case-insensitive substring
	CategoryID int64
	From       time.Time
	To         time.Time
}

type EventPage struct {
	Items   []Event
	Total   int
	Page    int
	PerPage int
}

const DefaultPerPage = 10

// makes user input match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ListPaginated lists events, active or not, newest change first. page is
// 1-based.
func (s *EventStore) ListPaginated(ctx context.Context, page, perPage int, filter AdminFilter) (EventPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	startTimer := time.Now()
	eventModels := make([]Event, 0)
	query := s.DB.NewSelect().
		Model(&eventModels).
		Relation("Category")
	if filter.ID != "" {
		query = query.Where("e.id = ?", filter.ID)
	}
	if title := strings.TrimSpace(filter.Title); title != "" {
		query = query.Where("LOWER(e.title) LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(strings.ToLower(title))+"%")
	}
	if filter.CategoryID != 0 {
		query = query.Where("e.category_id = ?", filter.CategoryID)
	}
	if !filter.From.IsZero() {
		query = query.Where("e.end_date >= ?", filter.From.Unix())
	}
	if !filter.To.IsZero() {
		query = query.Where("e.start_date <= ?", filter.To.Unix())
	}
	total, err := query.
		OrderExpr("COALESCE(NULLIF(e.modified_at, 0), e.created_at) DESC").
		Order("e.id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		ScanAndCount(ctx)
	if err != nil {
		return EventPage{}, fmt.Errorf("(*EventStore).ListPaginated: %w", err)
	}
	s.observeRead(startTimer)

	return EventPage{
		Items:   eventModels,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (s *EventStore) GetByID(ctx context.Context, id string) (*Event, error) {
	startTimer := time.Now()
	eventModel := new(Event)
	if err := s.DB.NewSelect().
		Model(eventModel).
		Relation("Category").
		Relation("CostCenter").
		Where("e.id = ?", id).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("(*EventStore).GetByID: %w", ErrEventNotFound)
		}
		return nil, fmt.Errorf("(*EventStore).GetByID: %w", err)
	}
	s.observeRead(startTimer)
	return eventModel, nil
}

// Save creates or updates an event. A blank id gets a fresh one.
func (s *EventStore) Save(ctx context.Context, eventModel *Event) error {
	if eventModel.ID == "" {
		eventModel.ID = uuid.NewString()
	}
	startTimer := time.Now()
	if err := eventModel.Upsert(ctx, s.DB); err != nil {
		return fmt.Errorf("(*EventStore).Save: %w", err)
	}
	s.observeWrite(startTimer)
	return nil
}

// SetActive switches an event on or off and stamps who did it.
func (s *EventStore) SetActive(ctx context.Context, id string, active bool, modifiedBy string) error {
	startTimer := time.Now()
	res, err := s.DB.NewUpdate().
		Model((*Event)(nil)).
		Set("active = ?", active).
		Set("modified_by = ?", modifiedBy).
		Set("modified_at = ?", time.Now().UTC().Unix()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("(*EventStore).SetActive: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("(*EventStore).SetActive: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("(*EventStore).SetActive: %w", ErrEventNotFound)
	}
	s.observeWrite(startTimer)
	return nil
}

func (s *EventStore) countActiveIn(ctx context.Context, period calendar.Period) (int, error) {
	from, to := period.Bounds()
	startTimer := time.Now()
	count, err := s.DB.NewSelect().
		Model((*Event)(nil)).
		Where("e.active = ?", true).
		Where("e.start_date <= ?", to.Unix()).
		Where("e.end_date >= ?", from.Unix()).
		Count(ctx)
	if err != nil {
		return 0, err
	}
	s.observeRead(startTimer)
	return count, nil
}

// CountActiveInMonth counts the active events touching the month of ref.
func (s *EventStore) CountActiveInMonth(ctx context.Context, ref time.Time) (int, error) {
	count, err := s.countActiveIn(ctx, calendar.PeriodFor(calendar.Monthly, ref.In(s.Location)))
	if err != nil {
		return 0, fmt.Errorf("(*EventStore).CountActiveInMonth: %w", err)
	}
	return count, nil
}

// CountActiveOn counts the active events covering the date of day.
func (s *EventStore) CountActiveOn(ctx context.Context, day time.Time) (int, error) {
	count, err := s.countActiveIn(ctx, calendar.PeriodFor(calendar.Daily, day.In(s.Location)))
	if err != nil {
		return 0, fmt.Errorf("(*EventStore).CountActiveOn: %w", err)
	}
	return count, nil
}

// CategoryCount is the number of active events filed under one category.
type CategoryCount struct {
	CategoryID int64  `bun:"category_id" json:"categoryId"`
	Title      string `bun:"title" json:"title"`
	Color      string `bun:"color" json:"color"`
	Icon       string `bun:"icon" json:"icon"`
	Count      int    `bun:"count" json:"count"`
}

// CountByCategory groups the active events by category, ordered by title.
// Categories with no active event are left out.
func (s *EventStore) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	startTimer := time.Now()
	counts := make([]CategoryCount, 0)
	if err := s.DB.NewSelect().
		Model((*Category)(nil)).
		ColumnExpr("c.id AS category_id").
		ColumnExpr("c.title, c.color, c.icon").
		ColumnExpr("COUNT(e.id) AS count").
		Join("JOIN events AS e ON e.category_id = c.id").
		Where("e.active = ?", true).
		Group("c.id", "c.title", "c.color", "c.icon").
		Order("c.title ASC").
		Scan(ctx, &counts); err != nil {
		return nil, fmt.Errorf("(*EventStore).CountByCategory: %w", err)
	}
	s.observeRead(startTimer)
	return counts, nil
}

type Summary struct {
	Total         int              `json:"total"`
	ThisMonth     int              `json:"thisMonth"`
	Today         int              `json:"today"`
	CategoryCount int              `json:"categoryCount"`
	ByCategory    []CategoryCount  `json:"byCategory"`
	MonthEvents   []calendar.Event `json:"-"`
}

// Summarize gathers the admin dashboard figures: every event, the active ones
// in the month and on the date of now, the number of categories, the active
// events per category and the month's events ordered by start.
func (s *EventStore) Summarize(ctx context.Context, now time.Time) (Summary, error) {
	total, err := s.DB.NewSelect().
		Model((*Event)(nil)).
		Count(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("(*EventStore).Summarize: %w", err)
	}
	thisMonth, err := s.CountActiveInMonth(ctx, now)
	if err != nil {
		return Summary{}, err
	}
	today, err := s.CountActiveOn(ctx, now)
	if err != nil {
		return Summary{}, err
	}
	categoryCount, err := s.DB.NewSelect().
		Model((*Category)(nil)).
		Count(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("(*EventStore).Summarize: %w", err)
	}
	byCategory, err := s.CountByCategory(ctx)
	if err != nil {
		return Summary{}, err
	}
	monthEvents, err := s.FetchEvents(ctx, calendar.PeriodFor(calendar.Monthly, now.In(s.Location)), calendar.Filter{})
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Total:         total,
		ThisMonth:     thisMonth,
		Today:         today,
		CategoryCount: categoryCount,
		ByCategory:    byCategory,
		MonthEvents:   monthEvents,
	}, nil
}
