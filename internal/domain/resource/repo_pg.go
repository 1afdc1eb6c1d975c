package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const resourceCols = `id, kind, name, working_hours, created_at, updated_at`

func (r *repoPG) scanResource(row pgx.Row) (*Resource, error) {
	var (
		res Resource
		wh  []byte
	)
	if err := row.Scan(&res.ID, &res.Kind, &res.Name, &wh, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	if len(wh) > 0 {
		if err := json.Unmarshal(wh, &res.WorkingHours); err != nil {
			return nil, fmt.Errorf("decode working hours of %s %s: %w", res.Kind, res.ID, err)
		}
	}
	return &res, nil
}

func (r *repoPG) List(ctx context.Context, kind Kind) ([]*Resource, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+resourceCols+` FROM resource WHERE kind = $1 ORDER BY created_at, id`, kind)
	if err != nil {
		return nil, fmt.Errorf("query %s resources: %w", kind, err)
	}
	defer rows.Close()
	var items []*Resource
	for rows.Next() {
		res, err := r.scanResource(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s resources: %w", kind, err)
	}
	return items, nil
}

func (r *repoPG) Replace(ctx context.Context, kind Kind, items []*Resource) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]string, len(items))
	for i, res := range items {
		ids[i] = res.ID
	}
	if _, err := tx.Exec(ctx, `DELETE FROM resource WHERE kind = $1 AND id = ANY($2)`, kind, ids); err != nil {
		return fmt.Errorf("delete %s resources: %w", kind, err)
	}

	for _, res := range items {
		wh, err := json.Marshal(res.WorkingHours)
		if err != nil {
			return fmt.Errorf("encode working hours of %s %s: %w", kind, res.ID, err)
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO resource (id, kind, name, working_hours)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at`,
			res.ID, kind, res.Name, wh).Scan(&res.CreatedAt, &res.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert %s %s: %w", kind, res.ID, err)
		}
	}

	return tx.Commit(ctx)
}
