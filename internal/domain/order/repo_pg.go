package order

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

func (r *repoPG) Create(ctx context.Context, o *TestOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	var patientID *uuid.UUID
	if o.PatientID != uuid.Nil {
		patientID = &o.PatientID
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO test_order (id, patient_id, test_type, status)
		VALUES ($1, $2, $3, $4)`,
		o.ID, patientID, o.TestType, o.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*TestOrder, error) {
	var o TestOrder
	var patientID *uuid.UUID
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, patient_id, test_type, status, created_at
		FROM test_order WHERE id = $1`, id).
		Scan(&o.ID, &patientID, &o.TestType, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if patientID != nil {
		o.PatientID = *patientID
	}
	return &o, nil
}

