package harness

import (
	"fmt"
	"math"

	"github.com/roach88/curveforge/internal/instrument"
	"github.com/roach88/curveforge/internal/ir"
	"github.com/roach88/curveforge/internal/pipeline"
)

// ExpectationError is returned when a recorded outcome does not match.
type ExpectationError struct {
	Curve    string
	Expected string
	Actual   string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("curve %s: expected %s, got %s", e.Curve, e.Expected, e.Actual)
}

// evaluateExpectations checks every expectation against the run's records
// and returns all mismatches, in expectation order.
func evaluateExpectations(records []ir.Build, expects []Expectation) []error {
	byName := make(map[string]ir.Build, len(records))
	for _, r := range records {
		byName[r.CurveName] = r
	}

	var errs []error
	for _, exp := range expects {
		rec, ok := byName[exp.Curve]
		if !ok {
			errs = append(errs, &ExpectationError{Curve: exp.Curve, Expected: "a build record", Actual: "none"})
			continue
		}
		errs = append(errs, checkBuild(rec, exp)...)
	}
	return errs
}

func checkBuild(rec ir.Build, exp Expectation) []error {
	mismatch := func(expected, actual string) error {
		return &ExpectationError{Curve: exp.Curve, Expected: expected, Actual: actual}
	}

	if string(rec.Status) != exp.Status {
		actual := fmt.Sprintf("status %s", rec.Status)
		if rec.Status == ir.BuildError {
			actual = fmt.Sprintf("status error (%s: %s)", rec.ErrorCode, rec.ErrorMessage)
		}
		return []error{mismatch("status "+exp.Status, actual)}
	}

	var errs []error
	if exp.Code != "" && rec.ErrorCode != exp.Code {
		errs = append(errs, mismatch("code "+exp.Code, "code "+rec.ErrorCode))
	}
	if exp.Pillars != nil && len(rec.Pillars) != *exp.Pillars {
		errs = append(errs, mismatch(fmt.Sprintf("%d pillars", *exp.Pillars), fmt.Sprintf("%d pillars", len(rec.Pillars))))
	}
	if len(exp.Values) == 0 {
		return errs
	}

	c, err := pipeline.Restore(rec)
	if err != nil {
		return append(errs, mismatch("a restorable curve", err.Error()))
	}
	for _, v := range exp.Values {
		tenor, err := instrument.ParseTenor(v.At)
		if err != nil {
			errs = append(errs, mismatch("a valid tenor", err.Error()))
			continue
		}
		tol := v.Tolerance
		if tol == 0 {
			tol = DefaultTolerance
		}
		got := c.ValueAt(tenor.Years())
		if math.IsNaN(got) || math.Abs(got-v.Value) > tol {
			errs = append(errs, mismatch(
				fmt.Sprintf("value %.10g ± %g at %s", v.Value, tol, tenor),
				fmt.Sprintf("%.10g", got)))
		}
	}
	return errs
}
