package curve

import (
	"math"

	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
)

// RPISwapCurve projects the RPI index from zero-coupon inflation swap rates.
// Pillar times are index reference times (maturity less the observation lag)
// and pillar values are projected index levels.
type RPISwapCurve struct {
	interpolation instructions.Interpolation
	baseIndex     float64
	pillars       []Pillar

	// nodes include the origin (0, base).
	times     []float64
	levels    []float64
	logLevels []float64
}

// NewRPISwapCurve builds the index curve. A swap with rate K and maturity T
// fixes the projected index at T-lag to base*(1+K)^T.
func NewRPISwapCurve(insts []instrument.RPISwap, instr instructions.RPISwapCurve) (*RPISwapCurve, error) {
	if !supportsInterpolation(instr.Interpolation) {
		return nil, NewUnsupportedInstructionsError(TypeRPISwapInflation, "interpolation %q is not supported", instr.Interpolation)
	}
	if !isFinite(instr.BaseIndex) || instr.BaseIndex <= 0 {
		return nil, NewUnsupportedInstructionsError(TypeRPISwapInflation, "base index must be positive, got %g", instr.BaseIndex)
	}
	if instr.IndexLagMonths < 0 {
		return nil, NewUnsupportedInstructionsError(TypeRPISwapInflation, "index lag must not be negative, got %d months", instr.IndexLagMonths)
	}

	quotes, err := normalizeQuotes(TypeRPISwapInflation, insts)
	if err != nil {
		return nil, err
	}

	lag := float64(instr.IndexLagMonths) / 12
	pillars := make([]Pillar, 0, len(quotes))
	for _, q := range quotes {
		ref := q.t - lag
		if ref <= 0 {
			return nil, NewMalformedInstrumentError(TypeRPISwapInflation,
				"maturity %s does not extend past the %d month index lag", q.tenor, instr.IndexLagMonths)
		}

		level := instr.BaseIndex * math.Pow(1+q.rate, q.t)
		if !isFinite(level) || level <= 0 {
			return nil, constructionErrorf(TypeRPISwapInflation, KindNumericalFailure,
				"projected index %g at %s is out of range", level, q.tenor)
		}
		pillars = append(pillars, Pillar{Tenor: q.tenor, Time: ref, Value: level})
	}

	return newRPISwapCurve(instr.Interpolation, instr.BaseIndex, pillars), nil
}

func newRPISwapCurve(interp instructions.Interpolation, base float64, pillars []Pillar) *RPISwapCurve {
	n := len(pillars) + 1
	c := &RPISwapCurve{
		interpolation: interp,
		baseIndex:     base,
		pillars:       pillars,
		times:         make([]float64, n),
		levels:        make([]float64, n),
		logLevels:     make([]float64, n),
	}
	c.levels[0] = base
	c.logLevels[0] = math.Log(base)
	for i, p := range pillars {
		c.times[i+1] = p.Time
		c.levels[i+1] = p.Value
		c.logLevels[i+1] = math.Log(p.Value)
	}
	return c
}

func (c *RPISwapCurve) Type() Type { return TypeRPISwapInflation }

func (c *RPISwapCurve) Interpolation() instructions.Interpolation { return c.interpolation }

func (c *RPISwapCurve) Pillars() []Pillar { return clonePillars(c.pillars) }

// ValueAt returns the projected index at reference time t.
func (c *RPISwapCurve) ValueAt(t float64) float64 { return c.ProjectedIndex(t) }

// BaseIndex is the index level at reference time zero.
func (c *RPISwapCurve) BaseIndex() float64 { return c.baseIndex }

// ProjectedIndex returns the index level at reference time t. Beyond the last
// pillar the continuously compounded inflation rate to that pillar is held flat.
func (c *RPISwapCurve) ProjectedIndex(t float64) float64 {
	if t <= 0 {
		return c.baseIndex
	}

	last := len(c.times) - 1
	if t >= c.times[last] {
		g := (c.logLevels[last] - c.logLevels[0]) / c.times[last]
		return c.baseIndex * math.Exp(g*t)
	}

	if c.interpolation == instructions.LogLinear {
		return math.Exp(interpolateLinear(c.times, c.logLevels, t))
	}
	return interpolateLinear(c.times, c.levels, t)
}

// IndexRatio returns ProjectedIndex(t) / BaseIndex.
func (c *RPISwapCurve) IndexRatio(t float64) float64 {
	return c.ProjectedIndex(t) / c.baseIndex
}
