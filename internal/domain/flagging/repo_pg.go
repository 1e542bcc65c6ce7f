package flagging

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

const configCols = `id, test_code, parameter_name, description, unit, gender,
	min_value, max_value, is_active, effective_date, created_at, updated_at`

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

func scanConfig(row pgx.Row) (*FlagConfig, error) {
	var c FlagConfig
	err := row.Scan(&c.ID, &c.TestCode, &c.ParameterName, &c.Description, &c.Unit,
		&c.Gender, &c.Min, &c.Max, &c.Active, &c.EffectiveDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectConfigs(rows pgx.Rows) ([]FlagConfig, error) {
	defer rows.Close()
	var out []FlagConfig
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Upsert relies on the unique index over (test_code, parameter_name,
// gender); parameter_name and gender use '' rather than NULL so the
// index covers gender-agnostic rows too.
func (r *repoPG) Upsert(ctx context.Context, cfg *FlagConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO flag_config (id, test_code, parameter_name, description, unit,
			gender, min_value, max_value, is_active, effective_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (test_code, parameter_name, gender) DO UPDATE SET
			description = EXCLUDED.description,
			unit = EXCLUDED.unit,
			min_value = EXCLUDED.min_value,
			max_value = EXCLUDED.max_value,
			is_active = EXCLUDED.is_active,
			effective_date = EXCLUDED.effective_date,
			updated_at = now()`,
		cfg.ID, cfg.TestCode, cfg.ParameterName, cfg.Description, cfg.Unit,
		cfg.Gender, cfg.Min, cfg.Max, cfg.Active, cfg.EffectiveDate)
	return err
}

func (r *repoPG) ListActiveByTestCodes(ctx context.Context, codes []string) ([]FlagConfig, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+configCols+` FROM flag_config
		WHERE test_code = ANY($1) AND is_active = true
		ORDER BY test_code, gender`, codes)
	if err != nil {
		return nil, err
	}
	return collectConfigs(rows)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]FlagConfig, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM flag_config`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+configCols+` FROM flag_config
		ORDER BY test_code, parameter_name, gender
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	cfgs, err := collectConfigs(rows)
	if err != nil {
		return nil, 0, err
	}
	return cfgs, total, nil
}
