package curve

import (
	"math"
	"slices"

	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
)

// scheduleEpsilon absorbs floating-point noise when rolling a payment
// schedule back from maturity.
const scheduleEpsilon = 1e-9

// IRSwapCurve is a discount curve bootstrapped from par swap rates.
// Pillar values are discount factors.
type IRSwapCurve struct {
	interpolation instructions.Interpolation
	pillars       []Pillar

	times     []float64
	zeroRates []float64

	// logTimes/logDFs include the origin node (0, 0).
	logTimes []float64
	logDFs   []float64
}

// NewIRSwapCurve bootstraps a discount curve with DefaultSolverConfig.
func NewIRSwapCurve(insts []instrument.IRSwap, instr instructions.IRSwapCurve) (*IRSwapCurve, error) {
	return BootstrapIRSwapCurve(insts, instr, DefaultSolverConfig())
}

// BootstrapIRSwapCurve solves one discount factor per swap in maturity order.
// For a swap with rate S and maturity T the pillar D(T) satisfies
//
//	S * sum(tau_i * D(t_i)) + D(T) - 1 = 0
//
// over the fixed leg schedule, with intermediate D(t_i) taken from the curve
// built so far plus the trial pillar.
func BootstrapIRSwapCurve(insts []instrument.IRSwap, instr instructions.IRSwapCurve, cfg SolverConfig) (*IRSwapCurve, error) {
	accrual, err := validateIRSInstructions(instr)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConstructionError{
			Kind:    KindUnsupportedInstructions,
			Tag:     TypeIRS,
			Message: "invalid solver configuration",
			Err:     err,
		}
	}

	quotes, err := normalizeQuotes(TypeIRS, insts)
	if err != nil {
		return nil, err
	}

	freq := float64(instr.FixedFrequency)
	pillars := make([]Pillar, 0, len(quotes))
	for _, q := range quotes {
		df, err := bootstrapPillar(instr.Interpolation, pillars, q, freq, accrual, cfg)
		if err != nil {
			return nil, err
		}
		pillars = append(pillars, Pillar{Tenor: q.tenor, Time: q.t, Value: df})
	}

	return newIRSwapCurve(instr.Interpolation, pillars), nil
}

func validateIRSInstructions(instr instructions.IRSwapCurve) (float64, error) {
	if !supportsInterpolation(instr.Interpolation) {
		return 0, NewUnsupportedInstructionsError(TypeIRS, "interpolation %q is not supported", instr.Interpolation)
	}

	accrual, ok := accrualFactor(instr.DayCount)
	if !ok {
		return 0, NewUnsupportedInstructionsError(TypeIRS, "day count %q is not supported", instr.DayCount)
	}

	switch instr.FixedFrequency {
	case 1, 2, 3, 4, 6, 12:
	default:
		return 0, NewUnsupportedInstructionsError(TypeIRS, "fixed frequency %d is not supported (want 1, 2, 3, 4, 6 or 12)", instr.FixedFrequency)
	}
	return accrual, nil
}

// accrualFactor scales a year fraction measured on a 365-day year into the
// day count's accrual.
func accrualFactor(dc instructions.DayCount) (float64, bool) {
	switch dc {
	case instructions.Act365Fixed, instructions.Thirty360:
		return 1, true
	case instructions.Act360:
		return 365.0 / 360.0, true
	default:
		return 0, false
	}
}

// paymentTimes rolls back from maturity in steps of 1/freq. A short first
// period is kept as a front stub.
func paymentTimes(maturity, freq float64) []float64 {
	step := 1 / freq
	var times []float64
	for t := maturity; t > scheduleEpsilon; t -= step {
		times = append(times, t)
	}
	slices.Reverse(times)
	return times
}

func bootstrapPillar(interp instructions.Interpolation, known []Pillar, q quote, freq, accrual float64, cfg SolverConfig) (float64, error) {
	schedule := paymentTimes(q.t, freq)

	var df float64
	if len(schedule) == 1 {
		df = 1 / (1 + q.rate*accrual*q.t)
	} else {
		residual := func(x float64) float64 {
			trial := newIRSwapCurve(interp, append(slices.Clip(known), Pillar{Time: q.t, Value: x}))
			annuity, prev := 0.0, 0.0
			for _, t := range schedule {
				annuity += (t - prev) * accrual * trial.DiscountFactor(t)
				prev = t
			}
			return q.rate*annuity + x - 1
		}

		res, err := solveDamped(residual, math.Exp(-q.rate*q.t), cfg)
		if err != nil {
			return 0, &ConstructionError{
				Kind:    KindNumericalFailure,
				Tag:     TypeIRS,
				Message: "bootstrap failed at " + q.tenor,
				Err:     err,
			}
		}
		df = res.x
	}

	if !isFinite(df) || df < cfg.MinDiscountFactor {
		return 0, constructionErrorf(TypeIRS, KindNumericalFailure, "discount factor %g at %s is out of range", df, q.tenor)
	}
	return df, nil
}

func newIRSwapCurve(interp instructions.Interpolation, pillars []Pillar) *IRSwapCurve {
	c := &IRSwapCurve{
		interpolation: interp,
		pillars:       pillars,
		times:         make([]float64, len(pillars)),
		zeroRates:     make([]float64, len(pillars)),
		logTimes:      make([]float64, len(pillars)+1),
		logDFs:        make([]float64, len(pillars)+1),
	}
	for i, p := range pillars {
		lnDF := math.Log(p.Value)
		c.times[i] = p.Time
		c.zeroRates[i] = -lnDF / p.Time
		c.logTimes[i+1] = p.Time
		c.logDFs[i+1] = lnDF
	}
	return c
}

func (c *IRSwapCurve) Type() Type { return TypeIRS }

func (c *IRSwapCurve) Interpolation() instructions.Interpolation { return c.interpolation }

func (c *IRSwapCurve) Pillars() []Pillar { return clonePillars(c.pillars) }

// ValueAt returns the discount factor at t.
func (c *IRSwapCurve) ValueAt(t float64) float64 { return c.DiscountFactor(t) }

// DiscountFactor returns D(t). D(0) = 1.
func (c *IRSwapCurve) DiscountFactor(t float64) float64 {
	if t <= 0 {
		return 1
	}
	return math.Exp(-c.ZeroRate(t) * t)
}

// ZeroRate returns the continuously compounded zero rate at t. The rate is
// held flat beyond the last pillar and, for linear interpolation, before the
// first one.
func (c *IRSwapCurve) ZeroRate(t float64) float64 {
	last := len(c.times) - 1
	if t >= c.times[last] {
		return c.zeroRates[last]
	}

	if c.interpolation == instructions.LogLinear {
		if t <= 0 {
			return c.zeroRates[0]
		}
		return -interpolateLinear(c.logTimes, c.logDFs, t) / t
	}
	return interpolateLinear(c.times, c.zeroRates, t)
}
