package curve

import (
	"github.com/roach88/curveforge/internal/instructions"
)

// Restore rebuilds an evaluable curve from previously solved pillars.
// anchor is the curve value at time zero (ValueAt(0) of the original curve);
// it supplies the base index for RPI curves and is ignored for IRS curves.
func Restore(tag Type, interp instructions.Interpolation, anchor float64, pillars []Pillar) (Curve, error) {
	if !supportsInterpolation(interp) {
		return nil, NewUnsupportedInstructionsError(tag, "interpolation %q is not supported", interp)
	}
	if len(pillars) == 0 {
		return nil, NewMalformedInstrumentError(tag, "no pillars to restore")
	}

	prev := 0.0
	for i, p := range pillars {
		if !isFinite(p.Time) || p.Time <= prev {
			return nil, NewMalformedInstrumentError(tag, "pillar %d (%s): time %g is not increasing", i, p.Tenor, p.Time)
		}
		if !isFinite(p.Value) || p.Value <= 0 {
			return nil, NewMalformedInstrumentError(tag, "pillar %d (%s): value %g must be positive", i, p.Tenor, p.Value)
		}
		prev = p.Time
	}

	owned := clonePillars(pillars)
	switch tag {
	case TypeIRS:
		return newIRSwapCurve(interp, owned), nil
	case TypeRPISwapInflation:
		if !isFinite(anchor) || anchor <= 0 {
			return nil, NewUnsupportedInstructionsError(tag, "base index must be positive, got %g", anchor)
		}
		return newRPISwapCurve(interp, anchor, owned), nil
	default:
		return nil, NewUnsupportedInstructionsError(tag, "no curve implementation for type %s", tag)
	}
}
