package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/curveforge/internal/instrument"
	"github.com/roach88/curveforge/internal/ir"
)

// DefaultTolerance applies to value checks that do not set one.
const DefaultTolerance = 1e-9

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Specs is the curve definition directory. Relative paths are resolved
	// against the scenario file's directory by LoadScenario.
	Specs string `yaml:"specs"`

	// RunID is an optional fixed run id.
	RunID string `yaml:"run_id,omitempty"`

	// Expect lists the outcomes to check, one entry per curve.
	Expect []Expectation `yaml:"expect"`
}

// Expectation describes the recorded outcome of one curve.
type Expectation struct {
	Curve string `yaml:"curve"`

	// Status is "ok" or "error".
	Status string `yaml:"status"`

	// Code is the expected error code; only valid with status error.
	Code string `yaml:"code,omitempty"`

	// Pillars is the expected pillar count of a successful build.
	Pillars *int `yaml:"pillars,omitempty"`

	// Values are point checks against the restored curve.
	Values []ValueCheck `yaml:"values,omitempty"`
}

// ValueCheck compares the curve value at tenor At.
type ValueCheck struct {
	At        string  `yaml:"at"`
	Value     float64 `yaml:"value"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if s.Specs != "" && !filepath.IsAbs(s.Specs) {
		s.Specs = filepath.Join(filepath.Dir(path), s.Specs)
	}

	if err := validateScenario(s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return s, nil
}

// ParseScenario decodes a scenario without resolving or validating it.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &s, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Specs == "" {
		return fmt.Errorf("specs is required")
	}
	if info, err := os.Stat(s.Specs); err != nil || !info.IsDir() {
		return fmt.Errorf("specs directory not found: %s", s.Specs)
	}
	if len(s.Expect) == 0 {
		return fmt.Errorf("expect list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Expect))
	for i, e := range s.Expect {
		if err := validateExpectation(e); err != nil {
			return fmt.Errorf("expect[%d]: %w", i, err)
		}
		if seen[e.Curve] {
			return fmt.Errorf("expect[%d]: curve %q listed twice", i, e.Curve)
		}
		seen[e.Curve] = true
	}
	return nil
}

func validateExpectation(e Expectation) error {
	if e.Curve == "" {
		return fmt.Errorf("curve is required")
	}

	switch ir.BuildStatus(e.Status) {
	case ir.BuildOK:
		if e.Code != "" {
			return fmt.Errorf("code is only valid with status %q", ir.BuildError)
		}
	case ir.BuildError:
		if e.Pillars != nil || len(e.Values) > 0 {
			return fmt.Errorf("pillars and values are only valid with status %q", ir.BuildOK)
		}
	default:
		return fmt.Errorf("status must be %q or %q, got %q", ir.BuildOK, ir.BuildError, e.Status)
	}

	if e.Pillars != nil && *e.Pillars < 0 {
		return fmt.Errorf("pillars must be non-negative")
	}
	for j, v := range e.Values {
		if _, err := instrument.ParseTenor(v.At); err != nil {
			return fmt.Errorf("values[%d]: %w", j, err)
		}
		if v.Tolerance < 0 {
			return fmt.Errorf("values[%d]: tolerance must be non-negative", j)
		}
	}
	return nil
}
