// Package result holds the downstream test results that flagging
// operates on. Rows arrive from the accepted-measurement stream and are
// mutated afterwards only by flag recomputation or a human review.
package result

import (
	"time"

	"github.com/google/uuid"
)

// TestResult is one stored parameter result for a test order.
// FlaggedBy is null when the flag was assigned automatically; Reviewed
// marks a human sign-off that recomputation must not overwrite.
type TestResult struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	TestOrderID    uuid.UUID  `db:"test_order_id" json:"testOrderId"`
	TestCode       string     `db:"test_code" json:"testCode"`
	Parameter      string     `db:"parameter" json:"parameter"`
	ValueNumeric   *float64   `db:"value_numeric" json:"valueNumeric,omitempty"`
	ValueText      *string    `db:"value_text" json:"valueText,omitempty"`
	Unit           string     `db:"unit" json:"unit"`
	ReferenceRange string     `db:"reference_range" json:"referenceRange"`
	Flag           string     `db:"flag" json:"flag,omitempty"`
	FlaggedAt      *time.Time `db:"flagged_at" json:"flaggedAt,omitempty"`
	FlaggedBy      *uuid.UUID `db:"flagged_by" json:"flaggedBy,omitempty"`
	Reviewed       bool       `db:"reviewed" json:"reviewed"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}

// NumericResult is the slice of a TestResult that flag recomputation
// needs, joined with the owning patient's gender.
type NumericResult struct {
	ID           uuid.UUID
	TestCode     string
	ValueNumeric float64
	Flag         string
	Reviewed     bool
	Gender       string
}

// FlagUpdate is one staged flag change applied by a bulk write.
type FlagUpdate struct {
	ID   uuid.UUID
	Flag string
}
