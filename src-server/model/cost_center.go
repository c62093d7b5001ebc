package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

type CostCenter struct {
	bun.BaseModel `bun:"table:cost_centers,alias:cc"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"` // required
	Unit string `bun:"unit"`
}

func (cc *CostCenter) Upsert(ctx context.Context, db bun.IDB) error {
	if strings.TrimSpace(cc.Name) == "" {
		return fmt.Errorf("(*CostCenter).Upsert: %w: name is blank", ErrValidation)
	}

	if cc.ID == 0 {
		if _, err := db.NewInsert().
			Model(cc).
			Returning("id").
			Exec(ctx); err != nil {
			return fmt.Errorf("(*CostCenter).Upsert: %w", err)
		}
		return nil
	}

	if _, err := db.NewInsert().
		Model(cc).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("unit = EXCLUDED.unit").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*CostCenter).Upsert: %w", err)
	}
	return nil
}

// ListCostCentersWithEvents returns the cost centers owning at least one
// active event, ordered by name.
func ListCostCentersWithEvents(ctx context.Context, db bun.IDB) ([]CostCenter, error) {
	costCenters := make([]CostCenter, 0)
	if err := db.NewSelect().
		Model(&costCenters).
		Where("EXISTS (SELECT 1 FROM events AS ev WHERE ev.cost_center_id = cc.id AND ev.active = ?)", true).
		Order("cc.name ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("ListCostCentersWithEvents: %w", err)
	}
	return costCenters, nil
}
