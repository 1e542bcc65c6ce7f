// Package measurement holds raw instrument output: the write-ahead
// staging rows a run produces before delivery, and the deduplicated
// backup copies accepted off the broker.
package measurement

import (
	"time"

	"github.com/google/uuid"
)

// Measurement statuses as reported by the instrument run.
const (
	StatusFinal       = "Final"
	StatusPreliminary = "Preliminary"
)

// RawMeasurement is one parameter reading from an instrument run.
// Exactly one of ValueNumeric and ValueText is set.
type RawMeasurement struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	TestOrderID    uuid.UUID  `db:"test_order_id" json:"testOrderId"`
	TestCode       string     `db:"test_code" json:"testCode"`
	Parameter      string     `db:"parameter" json:"parameter"`
	ValueNumeric   *float64   `db:"value_numeric" json:"valueNumeric,omitempty"`
	ValueText      *string    `db:"value_text" json:"valueText,omitempty"`
	Unit           string     `db:"unit" json:"unit"`
	ReferenceRange string     `db:"reference_range" json:"referenceRange"`
	Instrument     string     `db:"instrument" json:"instrument"`
	PerformedAt    time.Time  `db:"performed_at" json:"performedAt"`
	Status         string     `db:"status" json:"status"`
	Sent           bool       `db:"sent" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}

// Batch groups the measurements of one instrument run on one order.
type Batch struct {
	TestOrderID  uuid.UUID        `json:"testOrderId"`
	Instrument   string           `json:"instrument"`
	PerformedAt  time.Time        `json:"performedDate"`
	Measurements []RawMeasurement `json:"results"`
}
