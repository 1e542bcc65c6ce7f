package result

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *TestResult) error
	ListByOrder(ctx context.Context, testOrderID uuid.UUID) ([]TestResult, error)
	// ListNumericByTestCodes returns every numeric-valued result whose
	// test code is in the set, joined with the patient's gender.
	// Text-valued results are excluded at the query level.
	ListNumericByTestCodes(ctx context.Context, codes []string) ([]NumericResult, error)
	// BulkUpdateFlags applies staged flag changes. Updated rows get
	// flagged_at=now and flagged_by=NULL to mark the change automatic.
	BulkUpdateFlags(ctx context.Context, updates []FlagUpdate) error
}
