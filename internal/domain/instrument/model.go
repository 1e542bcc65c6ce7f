package instrument

import (
	"time"

	"github.com/google/uuid"
)

// Instrument status values. Only Pending instruments accept new work;
// warehouse administration owns the transitions.
const (
	StatusPending = "Pending"
	StatusBusy    = "Busy"
	StatusOffline = "Offline"
)

// Instrument maps to the instrument table. The pipeline reads the
// directory; creation and status changes belong to warehouse
// administration.
type Instrument struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	SupportedTests []string  `db:"supported_tests" json:"supported_tests"`
	Status         string    `db:"status" json:"status"`
	Load           int       `db:"load" json:"load"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Supports reports whether the instrument can run the given test type.
func (i *Instrument) Supports(testType string) bool {
	for _, t := range i.SupportedTests {
		if t == testType {
			return true
		}
	}
	return false
}

// Available reports whether the instrument is eligible for assignment.
func (i *Instrument) Available() bool {
	return i.Status == StatusPending
}
