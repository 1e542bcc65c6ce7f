// Package catalog holds the test-parameter catalog: which parameters a
// test type expands to, their units, and the numeric bounds synthetic
// values are sampled from. The catalog is an injected, read-only data
// source so deployments can swap the builtin defaults for a file without
// touching the generator.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParameterSpec describes one measured parameter of a test type.
type ParameterSpec struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	ReferenceRange string  `json:"reference_range"`
}

// TestDefinition is the full parameter set for a test type.
type TestDefinition struct {
	TestType   string          `json:"test_type"`
	Parameters []ParameterSpec `json:"parameters"`
}

// Source answers parameter lookups for test types. Implementations are
// immutable after construction.
type Source interface {
	Lookup(testType string) (*TestDefinition, bool)
	TestTypes() []string
}

// StaticSource is a fixed in-memory catalog.
type StaticSource struct {
	defs  map[string]TestDefinition
	order []string
}

// NewStaticSource builds a catalog from the given definitions. Later
// definitions for the same test type replace earlier ones.
func NewStaticSource(defs ...TestDefinition) *StaticSource {
	s := &StaticSource{defs: make(map[string]TestDefinition, len(defs))}
	for _, d := range defs {
		if _, seen := s.defs[d.TestType]; !seen {
			s.order = append(s.order, d.TestType)
		}
		s.defs[d.TestType] = d
	}
	return s
}

func (s *StaticSource) Lookup(testType string) (*TestDefinition, bool) {
	d, ok := s.defs[testType]
	if !ok {
		return nil, false
	}
	return &d, true
}

func (s *StaticSource) TestTypes() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// NewFileSource reads test definitions from a JSON file containing an
// array of TestDefinition objects.
func NewFileSource(path string) (*StaticSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	var defs []TestDefinition
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	for _, d := range defs {
		if d.TestType == "" {
			return nil, fmt.Errorf("catalog file %s: definition with empty test_type", path)
		}
		for _, p := range d.Parameters {
			if p.Code == "" {
				return nil, fmt.Errorf("catalog file %s: %s has a parameter with empty code", path, d.TestType)
			}
			if p.Min > p.Max {
				return nil, fmt.Errorf("catalog file %s: %s/%s has min %v > max %v", path, d.TestType, p.Code, p.Min, p.Max)
			}
		}
	}

	return NewStaticSource(defs...), nil
}

// Default returns the builtin catalog. CBC carries the classic eight-parameter
// hemogram; BMP is a small chemistry panel used mostly by tests and demos.
func Default() *StaticSource {
	return NewStaticSource(
		TestDefinition{
			TestType: "CBC",
			Parameters: []ParameterSpec{
				{Code: "WBC", Name: "White Blood Cells", Unit: "10^3/uL", Min: 4.5, Max: 11.0, ReferenceRange: "4.5-11.0"},
				{Code: "RBC", Name: "Red Blood Cells", Unit: "10^6/uL", Min: 4.5, Max: 5.9, ReferenceRange: "4.5-5.9"},
				{Code: "HGB", Name: "Hemoglobin", Unit: "g/dL", Min: 13.5, Max: 17.5, ReferenceRange: "13.5-17.5"},
				{Code: "HCT", Name: "Hematocrit", Unit: "%", Min: 41.0, Max: 53.0, ReferenceRange: "41.0-53.0"},
				{Code: "MCV", Name: "Mean Corpuscular Volume", Unit: "fL", Min: 80.0, Max: 100.0, ReferenceRange: "80-100"},
				{Code: "MCH", Name: "Mean Corpuscular Hemoglobin", Unit: "pg", Min: 27.0, Max: 33.0, ReferenceRange: "27-33"},
				{Code: "MCHC", Name: "Mean Corpuscular Hemoglobin Concentration", Unit: "g/dL", Min: 32.0, Max: 36.0, ReferenceRange: "32-36"},
				{Code: "PLT", Name: "Platelets", Unit: "10^3/uL", Min: 150.0, Max: 450.0, ReferenceRange: "150-450"},
			},
		},
		TestDefinition{
			TestType: "BMP",
			Parameters: []ParameterSpec{
				{Code: "GLU", Name: "Glucose", Unit: "mg/dL", Min: 70.0, Max: 100.0, ReferenceRange: "70-100"},
				{Code: "NA", Name: "Sodium", Unit: "mmol/L", Min: 136.0, Max: 145.0, ReferenceRange: "136-145"},
				{Code: "K", Name: "Potassium", Unit: "mmol/L", Min: 3.5, Max: 5.1, ReferenceRange: "3.5-5.1"},
				{Code: "CRE", Name: "Creatinine", Unit: "mg/dL", Min: 0.7, Max: 1.3, ReferenceRange: "0.7-1.3"},
			},
		},
	)
}
