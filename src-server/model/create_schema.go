package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

func CreateSchema(ctx context.Context, db *bun.DB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{
			(*CostCenter)(nil),
			(*Category)(nil),
			(*Event)(nil),
		} {
			if _, err := tx.
				NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}
		for _, index := range []struct{ name, column string }{
			{"events_start_date_idx", "start_date"},
			{"events_category_id_idx", "category_id"},
			{"events_cost_center_id_idx", "cost_center_id"},
		} {
			if _, err := tx.
				NewCreateIndex().
				Model((*Event)(nil)).
				Index(index.name).
				Column(index.column).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}

	return nil
}
