package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/curveforge/internal/ir"
)

// Render writes a deterministic text rendering of a scenario result.
// Floats use fixed six-decimal precision so renderings are stable across
// platforms.
func Render(name string, r *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", name)
	fmt.Fprintf(&buf, "run: %s\n", r.RunID)

	for _, b := range r.Builds {
		if b.Status == string(ir.BuildOK) {
			fmt.Fprintf(&buf, "[%d] %s %s ok %s\n", b.Seq, b.Curve, b.Type, b.Interpolation)
			for _, p := range b.Pillars {
				fmt.Fprintf(&buf, "    %s t=%.6f value=%.6f\n", p.Tenor, p.Time, p.Value)
			}
			continue
		}
		fmt.Fprintf(&buf, "[%d] %s %s error %s\n", b.Seq, b.Curve, b.Type, b.Code)
	}

	if r.Pass {
		buf.WriteString("result: pass\n")
		return buf.Bytes()
	}
	buf.WriteString("result: fail\n")
	for _, e := range r.Errors {
		fmt.Fprintf(&buf, "  - %s\n", e)
	}
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its rendering against
// testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the rendering doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Render(name, result))
}
