// Package instructions defines the per-family construction conventions that
// accompany a set of instruments: interpolation, day count, payment frequency,
// index conventions.
//
// Values are only carried here. Whether a combination is supported is decided
// by the curve that consumes them.
package instructions

// Interpolation names the interpolation scheme between curve pillars.
type Interpolation string

const (
	// Linear interpolates the curve's natural quantity linearly
	// (zero rates for discount curves, index level for inflation curves).
	Linear Interpolation = "linear"

	// LogLinear interpolates the logarithm of discount factors or index levels.
	LogLinear Interpolation = "log_linear"
)

// DayCount names the accrual convention of a fixed leg.
type DayCount string

const (
	Act365Fixed DayCount = "ACT/365F"
	Act360      DayCount = "ACT/360"
	Thirty360   DayCount = "30/360"
)

// Instructions is implemented by every family's construction record.
type Instructions interface {
	InterpolationMethod() Interpolation
}

// IRSwapCurve configures an interest-rate swap discount curve.
type IRSwapCurve struct {
	Interpolation Interpolation `json:"interpolation"`
	DayCount      DayCount      `json:"day_count"`

	// FixedFrequency is the number of fixed-leg payments per year.
	FixedFrequency int `json:"fixed_frequency"`
}

func (c IRSwapCurve) InterpolationMethod() Interpolation { return c.Interpolation }

// DefaultIRSwapCurve returns annual ACT/365F fixed legs with log-linear
// discount factor interpolation.
func DefaultIRSwapCurve() IRSwapCurve {
	return IRSwapCurve{
		Interpolation:  LogLinear,
		DayCount:       Act365Fixed,
		FixedFrequency: 1,
	}
}

// RPISwapCurve configures an RPI zero-coupon inflation swap curve.
type RPISwapCurve struct {
	Interpolation Interpolation `json:"interpolation"`

	// BaseIndex is the published index level the swaps are struck against.
	BaseIndex float64 `json:"base_index"`

	// IndexLagMonths is the observation lag applied to every fixing.
	IndexLagMonths int `json:"index_lag_months"`
}

func (c RPISwapCurve) InterpolationMethod() Interpolation { return c.Interpolation }

// DefaultRPISwapCurve returns a two-month lagged, linearly interpolated
// index curve rebased to 100.
func DefaultRPISwapCurve() RPISwapCurve {
	return RPISwapCurve{
		Interpolation:  Linear,
		BaseIndex:      100,
		IndexLagMonths: 2,
	}
}

// Generic carries instructions for curve types without a dedicated record.
// Options holds any remaining scalar settings verbatim.
type Generic struct {
	Interpolation Interpolation     `json:"interpolation"`
	Options       map[string]string `json:"options,omitempty"`
}

func (g Generic) InterpolationMethod() Interpolation { return g.Interpolation }
