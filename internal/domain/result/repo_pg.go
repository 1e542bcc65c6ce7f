package result

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

const resultCols = `id, test_order_id, test_code, parameter, value_numeric, value_text,
	unit, reference_range, flag, flagged_at, flagged_by, reviewed, created_at`

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

func scanResult(row pgx.Row) (*TestResult, error) {
	var res TestResult
	var flag *string
	err := row.Scan(&res.ID, &res.TestOrderID, &res.TestCode, &res.Parameter,
		&res.ValueNumeric, &res.ValueText, &res.Unit, &res.ReferenceRange,
		&flag, &res.FlaggedAt, &res.FlaggedBy, &res.Reviewed, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	if flag != nil {
		res.Flag = *flag
	}
	return &res, nil
}

func (r *repoPG) Create(ctx context.Context, res *TestResult) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	var flag *string
	if res.Flag != "" {
		flag = &res.Flag
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO test_result (id, test_order_id, test_code, parameter,
			value_numeric, value_text, unit, reference_range, flag,
			flagged_at, flagged_by, reviewed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		res.ID, res.TestOrderID, res.TestCode, res.Parameter, res.ValueNumeric,
		res.ValueText, res.Unit, res.ReferenceRange, flag, res.FlaggedAt,
		res.FlaggedBy, res.Reviewed)
	return err
}

func (r *repoPG) ListByOrder(ctx context.Context, testOrderID uuid.UUID) ([]TestResult, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+resultCols+` FROM test_result
		WHERE test_order_id = $1 ORDER BY test_code`, testOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TestResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *repoPG) ListNumericByTestCodes(ctx context.Context, codes []string) ([]NumericResult, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT r.id, r.test_code, r.value_numeric, COALESCE(r.flag, ''), r.reviewed,
			COALESCE(p.gender, '')
		FROM test_result r
		JOIN test_order o ON o.id = r.test_order_id
		LEFT JOIN patient p ON p.id = o.patient_id
		WHERE r.test_code = ANY($1) AND r.value_numeric IS NOT NULL`, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NumericResult
	for rows.Next() {
		var n NumericResult
		if err := rows.Scan(&n.ID, &n.TestCode, &n.ValueNumeric, &n.Flag, &n.Reviewed, &n.Gender); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *repoPG) BulkUpdateFlags(ctx context.Context, updates []FlagUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`
			UPDATE test_result
			SET flag = $2, flagged_at = now(), flagged_by = NULL
			WHERE id = $1 AND reviewed = false`, u.ID, u.Flag)
	}

	if tx := db.TxFromContext(ctx); tx != nil {
		return tx.SendBatch(ctx, batch).Close()
	}
	return r.pool.SendBatch(ctx, batch).Close()
}
