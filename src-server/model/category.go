package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID           int64  `bun:"id,pk,autoincrement"`
	Title        string `bun:"title,notnull"` // required
	Description  string `bun:"description"`
	Icon         string `bun:"icon"`
	Color        string `bun:"color"`
	CostCenterID int64  `bun:"cost_center_id,notnull"` // required

	CostCenter *CostCenter `bun:"rel:belongs-to,join:cost_center_id=id"`
}

func (c *Category) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case strings.TrimSpace(c.Title) == "":
		return fmt.Errorf("(*Category).Upsert: %w: title is blank", ErrValidation)
	case c.CostCenterID == 0:
		return fmt.Errorf("(*Category).Upsert: %w: cost center is blank", ErrValidation)
	}

	if c.ID == 0 {
		if _, err := db.NewInsert().
			Model(c).
			Returning("id").
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Category).Upsert: %w", err)
		}
		return nil
	}

	if _, err := db.NewInsert().
		Model(c).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("icon = EXCLUDED.icon").
		Set("color = EXCLUDED.color").
		Set("cost_center_id = EXCLUDED.cost_center_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Category).Upsert: %w", err)
	}
	return nil
}

// ListCategories returns the categories of a cost center, or all of them when
// costCenterID is nil, ordered by title.
func ListCategories(ctx context.Context, db bun.IDB, costCenterID *int64) ([]Category, error) {
	categories := make([]Category, 0)
	query := db.NewSelect().
		Model(&categories).
		Order("c.title ASC")
	if costCenterID != nil {
		query = query.Where("c.cost_center_id = ?", *costCenterID)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, nil
}

var ErrCategoryNotFound = errors.New("category not found")

func GetCategory(ctx context.Context, db bun.IDB, id int64) (*Category, error) {
	category := new(Category)
	if err := db.NewSelect().
		Model(category).
		Where("c.id = ?", id).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetCategory: %w", ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("GetCategory: %w", err)
	}
	return category, nil
}
