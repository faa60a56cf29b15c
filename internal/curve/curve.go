// Package curve implements the curve families produced by the builders:
// a bootstrapped interest-rate swap discount curve and a projected RPI index
// curve.
//
// Curves are immutable once constructed and safe for concurrent reads.
// Constructors validate their inputs and return *ConstructionError on any
// failure; they never return a partially built curve.
package curve

import (
	"math"
	"slices"
	"sort"

	"github.com/roach88/curveforge/internal/instructions"
)

// Curve is the family-agnostic view of a constructed curve.
type Curve interface {
	// Type is the family tag the curve was built for.
	Type() Type

	// Interpolation is the scheme used between pillars.
	Interpolation() instructions.Interpolation

	// Pillars returns a copy of the solved nodes in ascending time order.
	Pillars() []Pillar

	// ValueAt evaluates the curve's primary quantity at time t (in years):
	// the discount factor for IRS curves, the projected index for RPI curves.
	ValueAt(t float64) float64
}

// Pillar is one solved curve node.
type Pillar struct {
	// Tenor is the instrument maturity the node was solved from.
	Tenor string `json:"tenor"`

	// Time is the node position in years.
	Time float64 `json:"time"`

	// Value is the curve's primary quantity at Time.
	Value float64 `json:"value"`
}

// supportsInterpolation reports whether m is one of the implemented schemes.
func supportsInterpolation(m instructions.Interpolation) bool {
	return m == instructions.Linear || m == instructions.LogLinear
}

// interpolateLinear evaluates the piecewise-linear function through (xs, ys)
// at x, holding the end values flat outside [xs[0], xs[n-1]].
// xs must be strictly increasing and non-empty.
func interpolateLinear(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}

	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i]
	}
	w := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + w*(ys[i]-ys[i-1])
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clonePillars(p []Pillar) []Pillar {
	return slices.Clone(p)
}
