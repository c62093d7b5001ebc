package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calendarcorp/src-server/calendar"

	"github.com/uptrace/bun"
)

// ErrValidation wraps every refusal caused by the row's own content.
var ErrValidation = errors.New("invalid model")

type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          string `bun:"id,pk"`         // required
	Title       string `bun:"title,notnull"` // required
	Description string `bun:"description"`

	StartDateUnixUTC int64 `bun:"start_date,notnull"` // required
	EndDateUnixUTC   int64 `bun:"end_date,notnull"`   // required

	CategoryID   int64 `bun:"category_id,notnull"`    // required
	CostCenterID int64 `bun:"cost_center_id,notnull"` // required
	Active       bool  `bun:"active,notnull"`

	CreatedBy  string `bun:"created_by"`
	CreatedAt  int64  `bun:"created_at,notnull"`
	ModifiedBy string `bun:"modified_by"`
	ModifiedAt int64  `bun:"modified_at"`

	Category   *Category   `bun:"rel:belongs-to,join:category_id=id"`
	CostCenter *CostCenter `bun:"rel:belongs-to,join:cost_center_id=id"`
}

var _ bun.BeforeAppendModelHook = (*Event)(nil)

// stamps the audit columns; CreatedAt is kept if already set
func (e *Event) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC().Unix()
	switch query.(type) {
	case *bun.InsertQuery:
		if e.CreatedAt == 0 {
			e.CreatedAt = now
		}
	case *bun.UpdateQuery:
		e.ModifiedAt = now
	}
	return nil
}

func (e *Event) validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("%w: event id is blank", ErrValidation)
	case strings.TrimSpace(e.Title) == "":
		return fmt.Errorf("%w: title is blank", ErrValidation)
	case e.StartDateUnixUTC == 0:
		return fmt.Errorf("%w: start date is blank", ErrValidation)
	case e.EndDateUnixUTC == 0:
		return fmt.Errorf("%w: end date is blank", ErrValidation)
	case e.StartDateUnixUTC > e.EndDateUnixUTC:
		return fmt.Errorf("%w: start date must be before end date", ErrValidation)
	case e.CategoryID == 0:
		return fmt.Errorf("%w: category is blank", ErrValidation)
	case e.CostCenterID == 0:
		return fmt.Errorf("%w: cost center is blank", ErrValidation)
	}
	return nil
}

// Upsert inserts the event, or updates it when the id already exists. An
// update leaves the creation columns alone.
func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	if err := e.validate(); err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	switch exists {
	case true:
		if _, err := db.NewUpdate().
			Model(e).
			ExcludeColumn("created_by", "created_at").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}

// ToCalendarEvent converts the row into the value the calendar views work
// on, with every timestamp in loc.
func (e *Event) ToCalendarEvent(loc *time.Location) calendar.Event {
	fromUnix := func(sec int64) time.Time {
		if sec == 0 {
			return time.Time{}
		}
		return time.Unix(sec, 0).In(loc)
	}
	return calendar.Event{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		CategoryID:   e.CategoryID,
		CostCenterID: e.CostCenterID,
		Start:        fromUnix(e.StartDateUnixUTC),
		End:          fromUnix(e.EndDateUnixUTC),
		Active:       e.Active,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    fromUnix(e.CreatedAt),
		ModifiedBy:   e.ModifiedBy,
		ModifiedAt:   fromUnix(e.ModifiedAt),
	}
}
