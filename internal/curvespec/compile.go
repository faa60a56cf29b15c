package curvespec

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
	"github.com/roach88/curveforge/internal/ir"
)

// CompileDefinition parses a CUE value into a Definition.
//
// The value should be the definition struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`curve: usd: { type: "IRS", ... }`)
//	def, err := CompileDefinition(v.LookupPath(cue.ParsePath("curve.usd")))
//
// Structural problems are reported as *CompileError. Semantic checks that do
// not prevent decoding (unsupported interpolation, empty instrument lists,
// unknown curve types) are left to Validate and the builders.
func CompileDefinition(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &Definition{Pos: v.Pos()}
	if sels := v.Path().Selectors(); len(sels) > 0 {
		def.Name = unquoteLabel(sels[len(sels)-1].String())
	}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return nil, &CompileError{Field: "type", Message: "type is required", Pos: v.Pos()}
	}
	tag, err := typeVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		return nil, &CompileError{Field: "type", Message: "type must be non-empty", Pos: typeVal.Pos()}
	}
	def.Type = curve.Type(tag)

	if descVal := v.LookupPath(cue.ParsePath("description")); descVal.Exists() {
		if def.Description, err = descVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	def.Instructions, err = parseInstructions(def.Type, v.LookupPath(cue.ParsePath("instructions")))
	if err != nil {
		return nil, err
	}

	def.Instruments, err = parseInstruments(def.Type, v)
	if err != nil {
		return nil, err
	}

	def.Hash, err = ir.DefinitionHash(def.Canonical())
	if err != nil {
		return nil, fmt.Errorf("hashing definition %s: %w", def.Name, err)
	}

	return def, nil
}

// parseInstruments decodes the instruments list into the family's record type.
func parseInstruments(tag curve.Type, v cue.Value) ([]instrument.Instrument, error) {
	listVal := v.LookupPath(cue.ParsePath("instruments"))
	if !listVal.Exists() {
		return nil, &CompileError{Field: "instruments", Message: "instruments is required", Pos: v.Pos()}
	}

	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	insts := []instrument.Instrument{}
	for i := 0; iter.Next(); i++ {
		elem := iter.Value()
		field := fmt.Sprintf("instruments[%d]", i)

		tenorVal := elem.LookupPath(cue.ParsePath("tenor"))
		if !tenorVal.Exists() {
			return nil, &CompileError{Field: field + ".tenor", Message: "tenor is required", Pos: elem.Pos()}
		}
		tenorStr, err := tenorVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		tenor, err := instrument.ParseTenor(tenorStr)
		if err != nil {
			return nil, &CompileError{Field: field + ".tenor", Message: err.Error(), Pos: tenorVal.Pos()}
		}

		rateVal := elem.LookupPath(cue.ParsePath("rate"))
		if !rateVal.Exists() {
			return nil, &CompileError{Field: field + ".rate", Message: "rate is required", Pos: elem.Pos()}
		}
		rate, err := rateVal.Float64()
		if err != nil {
			return nil, &CompileError{Field: field + ".rate", Message: "rate must be a number", Pos: rateVal.Pos()}
		}

		switch tag {
		case curve.TypeIRS:
			insts = append(insts, instrument.IRSwap{Tenor: tenor, Rate: rate})
		case curve.TypeRPISwapInflation:
			insts = append(insts, instrument.RPISwap{Tenor: tenor, Rate: rate})
		default:
			insts = append(insts, instrument.Quote{Tenor: tenor, Rate: rate})
		}
	}
	return insts, nil
}

// parseInstructions starts from the family defaults and applies the fields
// present in v. A missing instructions block yields the defaults.
func parseInstructions(tag curve.Type, v cue.Value) (instructions.Instructions, error) {
	switch tag {
	case curve.TypeIRS:
		instr := instructions.DefaultIRSwapCurve()
		err := eachField(v, func(name string, f cue.Value) error {
			switch name {
			case "interpolation":
				return decodeString(f, name, (*string)(&instr.Interpolation))
			case "day_count":
				return decodeString(f, name, (*string)(&instr.DayCount))
			case "fixed_frequency":
				return decodeInt(f, name, &instr.FixedFrequency)
			default:
				return unknownInstruction(name, tag, f.Pos())
			}
		})
		return instr, err

	case curve.TypeRPISwapInflation:
		instr := instructions.DefaultRPISwapCurve()
		err := eachField(v, func(name string, f cue.Value) error {
			switch name {
			case "interpolation":
				return decodeString(f, name, (*string)(&instr.Interpolation))
			case "base_index":
				return decodeFloat(f, name, &instr.BaseIndex)
			case "index_lag_months":
				return decodeInt(f, name, &instr.IndexLagMonths)
			default:
				return unknownInstruction(name, tag, f.Pos())
			}
		})
		return instr, err

	default:
		instr := instructions.Generic{Interpolation: instructions.Linear}
		err := eachField(v, func(name string, f cue.Value) error {
			if name == "interpolation" {
				return decodeString(f, name, (*string)(&instr.Interpolation))
			}
			s, err := scalarString(f)
			if err != nil {
				return &CompileError{Field: "instructions." + name, Message: err.Error(), Pos: f.Pos()}
			}
			if instr.Options == nil {
				instr.Options = make(map[string]string)
			}
			instr.Options[name] = s
			return nil
		})
		return instr, err
	}
}

func eachField(v cue.Value, fn func(name string, f cue.Value) error) error {
	if !v.Exists() {
		return nil
	}
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		if err := fn(iter.Label(), iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

func decodeString(v cue.Value, name string, dst *string) error {
	s, err := v.String()
	if err != nil {
		return &CompileError{Field: "instructions." + name, Message: "must be a string", Pos: v.Pos()}
	}
	*dst = s
	return nil
}

func decodeInt(v cue.Value, name string, dst *int) error {
	n, err := v.Int64()
	if err != nil {
		return &CompileError{Field: "instructions." + name, Message: "must be an integer", Pos: v.Pos()}
	}
	*dst = int(n)
	return nil
}

func decodeFloat(v cue.Value, name string, dst *float64) error {
	f, err := v.Float64()
	if err != nil {
		return &CompileError{Field: "instructions." + name, Message: "must be a number", Pos: v.Pos()}
	}
	*dst = f
	return nil
}

// scalarString renders a concrete string, number or bool.
func scalarString(v cue.Value) (string, error) {
	switch v.IncompleteKind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		n, err := v.Int64()
		return strconv.FormatInt(n, 10), err
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64), err
	case cue.BoolKind:
		b, err := v.Bool()
		return strconv.FormatBool(b), err
	default:
		return "", fmt.Errorf("must be a string, number or bool")
	}
}

func unknownInstruction(name string, tag curve.Type, pos token.Pos) error {
	return &CompileError{
		Field:   "instructions." + name,
		Message: fmt.Sprintf("unknown instruction %q for curve type %s", name, tag),
		Pos:     pos,
	}
}

func unquoteLabel(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}

// CompileError is a structural problem in a curve definition.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
