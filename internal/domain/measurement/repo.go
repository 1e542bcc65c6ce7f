package measurement

import (
	"context"

	"github.com/google/uuid"
)

// StagingRepository persists measurements ahead of broker delivery.
// Rows start with sent=false and are flipped once published, so a
// crash between insert and publish leaves them for the sweeper.
type StagingRepository interface {
	InsertBatch(ctx context.Context, batch *Batch) error
	GetBatch(ctx context.Context, testOrderID uuid.UUID) ([]RawMeasurement, error)
	// UnsentBatches returns unsent measurements grouped per order,
	// oldest first.
	UnsentBatches(ctx context.Context) ([]Batch, error)
	MarkSent(ctx context.Context, testOrderID uuid.UUID) error
}

// BackupRepository stores measurements accepted off the broker.
// Inserts are idempotent so redelivered messages are harmless.
type BackupRepository interface {
	// InsertIgnoreDuplicates writes the measurements, silently
	// skipping any (test_order_id, test_code) already present. It
	// returns the number of rows actually inserted.
	InsertIgnoreDuplicates(ctx context.Context, ms []RawMeasurement) (int64, error)
	// ExistingCodes reports which of the given test codes already
	// have backup rows for the order.
	ExistingCodes(ctx context.Context, testOrderID uuid.UUID, codes []string) (map[string]bool, error)
	GetBatch(ctx context.Context, testOrderID uuid.UUID) ([]RawMeasurement, error)
}
