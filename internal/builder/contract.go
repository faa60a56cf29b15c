package builder

import (
	"reflect"

	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
)

// Typed is the per-family builder contract.
//
// BuildTyped must be pure: it must not mutate instruments or instr, must not
// retain references to them, and must return either a fully constructed curve
// or an error.
type Typed[T instrument.Instrument, U instructions.Instructions, C curve.Curve] interface {
	// CurveType is the single tag this builder serves.
	CurveType() curve.Type

	// BuildTyped constructs the curve. An empty instrument set is an error.
	BuildTyped(instruments []T, instr U) (C, error)
}

// Builder is the type-erased contract held by the registry.
type Builder interface {
	CurveType() curve.Type
	Build(instruments []instrument.Instrument, instr instructions.Instructions) (curve.Curve, error)
}

// Erase adapts a family builder to the registry contract.
func Erase[T instrument.Instrument, U instructions.Instructions, C curve.Curve](typed Typed[T, U, C]) Builder {
	return erased[T, U, C]{typed: typed}
}

// As recovers the family builder behind an erased Builder.
func As[T instrument.Instrument, U instructions.Instructions, C curve.Curve](b Builder) (Typed[T, U, C], bool) {
	e, ok := b.(erased[T, U, C])
	if !ok {
		return nil, false
	}
	return e.typed, true
}

type erased[T instrument.Instrument, U instructions.Instructions, C curve.Curve] struct {
	typed Typed[T, U, C]
}

func (e erased[T, U, C]) CurveType() curve.Type {
	return e.typed.CurveType()
}

// Build narrows every instrument to T and the instructions to U, then
// delegates. Errors from BuildTyped are returned as is.
func (e erased[T, U, C]) Build(instruments []instrument.Instrument, instr instructions.Instructions) (curve.Curve, error) {
	tag := e.typed.CurveType()

	narrowed := make([]T, len(instruments))
	for i, inst := range instruments {
		v, ok := inst.(T)
		if !ok {
			return nil, curve.NewMalformedInstrumentError(tag,
				"instrument %d is %s, want %s", i, typeName(inst), reflect.TypeFor[T]())
		}
		narrowed[i] = v
	}

	u, ok := instr.(U)
	if !ok {
		return nil, curve.NewUnsupportedInstructionsError(tag,
			"instructions are %s, want %s", typeName(instr), reflect.TypeFor[U]())
	}

	c, err := e.typed.BuildTyped(narrowed, u)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
