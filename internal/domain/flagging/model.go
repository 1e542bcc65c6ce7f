// Package flagging owns reference-range configuration and the
// recomputation of Low/Normal/High flags on stored results when that
// configuration changes.
package flagging

import (
	"time"

	"github.com/google/uuid"
)

// Flag labels assigned to numeric results.
const (
	FlagLow    = "Low"
	FlagNormal = "Normal"
	FlagHigh   = "High"
)

// FlagConfig is one reference-range rule. The logical key is
// (test_code, parameter_name, gender); an empty gender means the rule
// applies to all patients unless a gender-specific rule exists.
// Rows are deactivated rather than deleted.
type FlagConfig struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	TestCode      string     `db:"test_code" json:"testCode"`
	ParameterName string     `db:"parameter_name" json:"parameterName,omitempty"`
	Description   string     `db:"description" json:"description,omitempty"`
	Unit          string     `db:"unit" json:"unit,omitempty"`
	Gender        string     `db:"gender" json:"gender,omitempty"`
	Min           *float64   `db:"min_value" json:"min,omitempty"`
	Max           *float64   `db:"max_value" json:"max,omitempty"`
	Active        bool       `db:"is_active" json:"isActive"`
	EffectiveDate *time.Time `db:"effective_date" json:"effectiveDate,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// Evaluate classifies a value against the config's inclusive range.
// It returns false when the config cannot judge the value (inactive or
// missing a bound).
func (c *FlagConfig) Evaluate(value float64) (string, bool) {
	if !c.Active || c.Min == nil || c.Max == nil {
		return "", false
	}
	switch {
	case value < *c.Min:
		return FlagLow, true
	case value > *c.Max:
		return FlagHigh, true
	default:
		return FlagNormal, true
	}
}
