package measurement

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

const measurementCols = `id, test_order_id, test_code, parameter, value_numeric, value_text,
	unit, reference_range, instrument, performed_at, status, sent, created_at`

func scanMeasurement(row pgx.Row) (*RawMeasurement, error) {
	var m RawMeasurement
	err := row.Scan(&m.ID, &m.TestOrderID, &m.TestCode, &m.Parameter, &m.ValueNumeric,
		&m.ValueText, &m.Unit, &m.ReferenceRange, &m.Instrument, &m.PerformedAt,
		&m.Status, &m.Sent, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMeasurements(rows pgx.Rows) ([]RawMeasurement, error) {
	defer rows.Close()
	var out []RawMeasurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

type stagingPG struct{ pool *pgxpool.Pool }

func NewStagingRepoPG(pool *pgxpool.Pool) StagingRepository {
	return &stagingPG{pool: pool}
}

func (r *stagingPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *stagingPG) InsertBatch(ctx context.Context, batch *Batch) error {
	for i := range batch.Measurements {
		m := &batch.Measurements[i]
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO raw_measurement (id, test_order_id, test_code, parameter,
				value_numeric, value_text, unit, reference_range, instrument,
				performed_at, status, sent)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false)`,
			m.ID, batch.TestOrderID, m.TestCode, m.Parameter, m.ValueNumeric,
			m.ValueText, m.Unit, m.ReferenceRange, batch.Instrument,
			batch.PerformedAt, m.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *stagingPG) GetBatch(ctx context.Context, testOrderID uuid.UUID) ([]RawMeasurement, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+measurementCols+` FROM raw_measurement
		WHERE test_order_id = $1 ORDER BY test_code`, testOrderID)
	if err != nil {
		return nil, err
	}
	return collectMeasurements(rows)
}

func (r *stagingPG) UnsentBatches(ctx context.Context) ([]Batch, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+measurementCols+` FROM raw_measurement
		WHERE sent = false ORDER BY created_at, test_order_id, test_code`)
	if err != nil {
		return nil, err
	}
	ms, err := collectMeasurements(rows)
	if err != nil {
		return nil, err
	}

	var batches []Batch
	index := make(map[uuid.UUID]int)
	for _, m := range ms {
		i, ok := index[m.TestOrderID]
		if !ok {
			batches = append(batches, Batch{
				TestOrderID: m.TestOrderID,
				Instrument:  m.Instrument,
				PerformedAt: m.PerformedAt,
			})
			i = len(batches) - 1
			index[m.TestOrderID] = i
		}
		batches[i].Measurements = append(batches[i].Measurements, m)
	}
	return batches, nil
}

func (r *stagingPG) MarkSent(ctx context.Context, testOrderID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE raw_measurement SET sent = true
		WHERE test_order_id = $1 AND sent = false`, testOrderID)
	return err
}

type backupPG struct{ pool *pgxpool.Pool }

func NewBackupRepoPG(pool *pgxpool.Pool) BackupRepository {
	return &backupPG{pool: pool}
}

func (r *backupPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *backupPG) InsertIgnoreDuplicates(ctx context.Context, ms []RawMeasurement) (int64, error) {
	var inserted int64
	for i := range ms {
		m := &ms[i]
		id := m.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		tag, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO raw_measurement_backup (id, test_order_id, test_code, parameter,
				value_numeric, value_text, unit, reference_range, instrument,
				performed_at, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (test_order_id, test_code) DO NOTHING`,
			id, m.TestOrderID, m.TestCode, m.Parameter, m.ValueNumeric, m.ValueText,
			m.Unit, m.ReferenceRange, m.Instrument, m.PerformedAt, m.Status)
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

func (r *backupPG) ExistingCodes(ctx context.Context, testOrderID uuid.UUID, codes []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(codes))
	if len(codes) == 0 {
		return existing, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT test_code FROM raw_measurement_backup
		WHERE test_order_id = $1 AND test_code = ANY($2)`, testOrderID, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		existing[code] = true
	}
	return existing, rows.Err()
}

func (r *backupPG) GetBatch(ctx context.Context, testOrderID uuid.UUID) ([]RawMeasurement, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, test_order_id, test_code, parameter, value_numeric, value_text,
			unit, reference_range, instrument, performed_at, status, true, created_at
		FROM raw_measurement_backup
		WHERE test_order_id = $1 ORDER BY test_code`, testOrderID)
	if err != nil {
		return nil, err
	}
	return collectMeasurements(rows)
}
