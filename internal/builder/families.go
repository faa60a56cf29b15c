package builder

import (
	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
)

// RPISwapBuilder builds RPI inflation index curves from zero-coupon
// inflation swap quotes.
type RPISwapBuilder struct{}

var _ Typed[instrument.RPISwap, instructions.RPISwapCurve, *curve.RPISwapCurve] = RPISwapBuilder{}

func (RPISwapBuilder) CurveType() curve.Type { return curve.TypeRPISwapInflation }

func (RPISwapBuilder) BuildTyped(instruments []instrument.RPISwap, instr instructions.RPISwapCurve) (*curve.RPISwapCurve, error) {
	return curve.NewRPISwapCurve(instruments, instr)
}

// IRSwapBuilder bootstraps interest-rate swap discount curves from par
// swap rates.
type IRSwapBuilder struct{}

var _ Typed[instrument.IRSwap, instructions.IRSwapCurve, *curve.IRSwapCurve] = IRSwapBuilder{}

func (IRSwapBuilder) CurveType() curve.Type { return curve.TypeIRS }

func (IRSwapBuilder) BuildTyped(instruments []instrument.IRSwap, instr instructions.IRSwapCurve) (*curve.IRSwapCurve, error) {
	return curve.NewIRSwapCurve(instruments, instr)
}

// defaultBuilders is the table the process-wide registry is built from.
// One entry per curve family.
func defaultBuilders() []Builder {
	return []Builder{
		Erase[instrument.RPISwap, instructions.RPISwapCurve, *curve.RPISwapCurve](RPISwapBuilder{}),
		Erase[instrument.IRSwap, instructions.IRSwapCurve, *curve.IRSwapCurve](IRSwapBuilder{}),
	}
}
