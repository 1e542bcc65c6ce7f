// Package order exposes the minimal slice of test-order and patient data
// the pipeline needs: the order's requested test type and the patient
// gender used when resolving reference ranges. Full order lifecycle and
// patient record management live in other services.
package order

import (
	"time"

	"github.com/google/uuid"
)

// Gender values stored on the patient record. An empty string means
// unknown; flagging then falls back to gender-agnostic ranges.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// TestOrder maps to the test_order table.
type TestOrder struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	TestType  string    `db:"test_type" json:"test_type"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
