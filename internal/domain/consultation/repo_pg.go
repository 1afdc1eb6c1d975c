package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const consultationCols = `id, doctor_id, room_id, begin_at, end_at, created_at`

func (r *repoPG) scanConsultation(row pgx.Row) (*Consultation, error) {
	var c Consultation
	err := row.Scan(&c.ID, &c.DoctorID, &c.RoomID, &c.Begin, &c.End, &c.CreatedAt)
	c.Begin = c.Begin.UTC()
	c.End = c.End.UTC()
	return &c, err
}

func (r *repoPG) collect(rows pgx.Rows) ([]*Consultation, error) {
	defer rows.Close()
	var items []*Consultation
	for rows.Next() {
		c, err := r.scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consultations: %w", err)
	}
	return items, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM consultation`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count consultations: %w", err)
	}
	rows, err := r.pool.Query(ctx, `SELECT `+consultationCols+` FROM consultation ORDER BY begin_at, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query consultations: %w", err)
	}
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repoPG) ListAffecting(ctx context.Context, begin, end time.Time) ([]*Consultation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+consultationCols+` FROM consultation
		WHERE (begin_at >= $1 AND begin_at < $2)
		   OR (begin_at <= $1 AND end_at > $1)
		ORDER BY created_at, id`, begin, end)
	if err != nil {
		return nil, fmt.Errorf("query consultations: %w", err)
	}
	return r.collect(rows)
}

func (r *repoPG) Replace(ctx context.Context, items []*Consultation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]string, len(items))
	for i, c := range items {
		ids[i] = c.ID
	}
	if _, err := tx.Exec(ctx, `DELETE FROM consultation WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete consultations: %w", err)
	}

	batch := &pgx.Batch{}
	for _, c := range items {
		batch.Queue(`INSERT INTO consultation (id, doctor_id, room_id, begin_at, end_at) VALUES ($1, $2, $3, $4, $5)`,
			c.ID, c.DoctorID, c.RoomID, c.Begin, c.End)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert consultations: %w", err)
	}

	return tx.Commit(ctx)
}
