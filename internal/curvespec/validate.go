package curvespec

import (
	"fmt"
	"math"
	"regexp"
	"slices"

	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/instructions"
)

// Validation error codes (E200-E299).
const (
	ErrInvalidName          = "E200" // curve name is not an identifier
	ErrNoInstruments        = "E201" // at least one instrument required
	ErrUnknownCurveType     = "E202" // type outside the known enumeration
	ErrDuplicateMaturity    = "E203" // two instruments share a maturity
	ErrInvalidRate          = "E204" // non-finite rate or rate <= -100%
	ErrInvalidInterpolation = "E205" // unsupported interpolation
	ErrInvalidDayCount      = "E206" // unsupported day count
	ErrInvalidFrequency     = "E207" // unsupported fixed leg frequency
	ErrInvalidBaseIndex     = "E208" // base index must be positive
	ErrInvalidIndexLag      = "E209" // negative lag or lag beyond a maturity
	ErrNoBuilder            = "E210" // known type with no registered builder
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationError is a semantic problem in a compiled definition.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled definition and returns every problem found.
// It mirrors the checks the curve constructors apply so that `validate`
// reports them without building.
func Validate(def *Definition) []ValidationError {
	var errs []ValidationError
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
			Line:    def.Pos.Line(),
		})
	}

	if !namePattern.MatchString(def.Name) {
		add("name", ErrInvalidName, "curve name %q must be an identifier", def.Name)
	}
	if !def.Type.Valid() {
		add("type", ErrUnknownCurveType, "unknown curve type %q: must be one of %v", def.Type, curve.Types())
	}

	if len(def.Instruments) == 0 {
		add("instruments", ErrNoInstruments, "at least one instrument is required")
	}
	seen := make(map[float64]string, len(def.Instruments))
	for i, inst := range def.Instruments {
		field := fmt.Sprintf("instruments[%d]", i)
		m := inst.Maturity()
		if prev, dup := seen[m.Years()]; dup {
			add(field+".tenor", ErrDuplicateMaturity, "maturity %s duplicates %s", m, prev)
		}
		seen[m.Years()] = m.String()

		r := inst.Quote()
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= -1 {
			add(field+".rate", ErrInvalidRate, "rate %g is out of range", r)
		}
	}

	if def.Instructions == nil {
		add("instructions", ErrInvalidInterpolation, "instructions are missing")
		return errs
	}

	interp := def.Instructions.InterpolationMethod()
	if interp != instructions.Linear && interp != instructions.LogLinear {
		add("instructions.interpolation", ErrInvalidInterpolation,
			"interpolation %q is not supported (want %q or %q)", interp, instructions.Linear, instructions.LogLinear)
	}

	switch instr := def.Instructions.(type) {
	case instructions.IRSwapCurve:
		switch instr.DayCount {
		case instructions.Act365Fixed, instructions.Act360, instructions.Thirty360:
		default:
			add("instructions.day_count", ErrInvalidDayCount, "day count %q is not supported", instr.DayCount)
		}
		switch instr.FixedFrequency {
		case 1, 2, 3, 4, 6, 12:
		default:
			add("instructions.fixed_frequency", ErrInvalidFrequency,
				"fixed frequency %d is not supported (want 1, 2, 3, 4, 6 or 12)", instr.FixedFrequency)
		}

	case instructions.RPISwapCurve:
		if !(instr.BaseIndex > 0) || math.IsInf(instr.BaseIndex, 0) {
			add("instructions.base_index", ErrInvalidBaseIndex, "base index must be positive, got %g", instr.BaseIndex)
		}
		if instr.IndexLagMonths < 0 {
			add("instructions.index_lag_months", ErrInvalidIndexLag, "index lag must not be negative")
		}
		lag := float64(instr.IndexLagMonths) / 12
		for i, inst := range def.Instruments {
			if inst.Maturity().Years() <= lag {
				add(fmt.Sprintf("instruments[%d].tenor", i), ErrInvalidIndexLag,
					"maturity %s does not extend past the %d month index lag", inst.Maturity(), instr.IndexLagMonths)
			}
		}
	}

	return errs
}

// CheckBuildable reports definitions whose type is known but has no entry
// in the set of registered types. Unknown types are left to Validate.
func CheckBuildable(def *Definition, registered []curve.Type) []ValidationError {
	if !def.Type.Valid() || slices.Contains(registered, def.Type) {
		return nil
	}
	return []ValidationError{{
		Field:   "type",
		Message: fmt.Sprintf("curve type %q has no registered builder", def.Type),
		Code:    ErrNoBuilder,
		Line:    def.Pos.Line(),
	}}
}
