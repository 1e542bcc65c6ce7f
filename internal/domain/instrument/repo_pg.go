package instrument

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openlis/lis/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const instrumentCols = `id, name, supported_tests, status, load, created_at, updated_at`

func (r *repoPG) scanInstrument(row pgx.Row) (*Instrument, error) {
	var in Instrument
	err := row.Scan(&in.ID, &in.Name, &in.SupportedTests, &in.Status,
		&in.Load, &in.CreatedAt, &in.UpdatedAt)
	return &in, err
}

func (r *repoPG) Create(ctx context.Context, in *Instrument) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO instrument (id, name, supported_tests, status, load)
		VALUES ($1, $2, $3, $4, $5)`,
		in.ID, in.Name, in.SupportedTests, in.Status, in.Load)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Instrument, error) {
	return r.scanInstrument(r.conn(ctx).QueryRow(ctx,
		`SELECT `+instrumentCols+` FROM instrument WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Instrument, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM instrument`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+instrumentCols+` FROM instrument ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Instrument
	for rows.Next() {
		in, err := r.scanInstrument(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, in)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListAvailableByTest(ctx context.Context, testType string) ([]*Instrument, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+instrumentCols+` FROM instrument
		WHERE status = $1 AND $2 = ANY(supported_tests)
		ORDER BY load ASC, name ASC`,
		StatusPending, testType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Instrument
	for rows.Next() {
		in, err := r.scanInstrument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, in)
	}
	return items, rows.Err()
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE instrument SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) UpdateLoad(ctx context.Context, id uuid.UUID, load int) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE instrument SET load = $2, updated_at = NOW() WHERE id = $1`, id, load)
	return err
}
