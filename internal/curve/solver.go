package curve

import "fmt"

// SolverConfig controls the damped Newton iteration used to bootstrap
// discount factors.
type SolverConfig struct {
	// Tolerance is the absolute residual at which a pillar is accepted.
	Tolerance float64

	// MaxIterations caps Newton steps per pillar.
	MaxIterations int

	// DampingFactor bounds each step to this fraction of the current guess,
	// which also keeps the discount factor positive.
	DampingFactor float64

	// MinDiscountFactor is the smallest discount factor accepted as a result.
	MinDiscountFactor float64

	// DerivativeThreshold is the smallest residual slope the solver will
	// divide by.
	DerivativeThreshold float64

	// BumpSize is the finite-difference step for the residual slope.
	BumpSize float64
}

// DefaultSolverConfig returns the settings used by the registered IRS builder.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Tolerance:           1e-12,
		MaxIterations:       100,
		DampingFactor:       0.5,
		MinDiscountFactor:   1e-9,
		DerivativeThreshold: 1e-15,
		BumpSize:            1e-7,
	}
}

// Validate checks the configuration for values the solver cannot work with.
func (c SolverConfig) Validate() error {
	switch {
	case !(c.Tolerance > 0):
		return fmt.Errorf("solver tolerance must be positive, got %g", c.Tolerance)
	case c.MaxIterations <= 0:
		return fmt.Errorf("solver max iterations must be positive, got %d", c.MaxIterations)
	case !(c.DampingFactor > 0 && c.DampingFactor < 1):
		return fmt.Errorf("solver damping factor must be in (0, 1), got %g", c.DampingFactor)
	case !(c.MinDiscountFactor > 0):
		return fmt.Errorf("solver min discount factor must be positive, got %g", c.MinDiscountFactor)
	case !(c.DerivativeThreshold > 0):
		return fmt.Errorf("solver derivative threshold must be positive, got %g", c.DerivativeThreshold)
	case !(c.BumpSize > 0):
		return fmt.Errorf("solver bump size must be positive, got %g", c.BumpSize)
	}
	return nil
}

// solveResult reports how a root search ended.
type solveResult struct {
	x          float64
	residual   float64
	iterations int
}

// solveDamped finds x > 0 with f(x) = 0 starting from x0 > 0.
// Each Newton step is clamped to DampingFactor*x so iterates stay positive.
func solveDamped(f func(float64) float64, x0 float64, cfg SolverConfig) (solveResult, error) {
	x := x0
	fx := f(x)
	for i := 0; i < cfg.MaxIterations; i++ {
		if abs(fx) < cfg.Tolerance {
			return solveResult{x: x, residual: fx, iterations: i}, nil
		}

		h := cfg.BumpSize * max(1, abs(x))
		slope := (f(x+h) - fx) / h
		if abs(slope) < cfg.DerivativeThreshold {
			return solveResult{x: x, residual: fx, iterations: i},
				fmt.Errorf("residual slope %g below threshold at x=%g", slope, x)
		}

		step := -fx / slope
		limit := cfg.DampingFactor * x
		if step > limit {
			step = limit
		} else if step < -limit {
			step = -limit
		}

		x += step
		fx = f(x)
	}

	if abs(fx) < cfg.Tolerance {
		return solveResult{x: x, residual: fx, iterations: cfg.MaxIterations}, nil
	}
	return solveResult{x: x, residual: fx, iterations: cfg.MaxIterations},
		fmt.Errorf("no convergence after %d iterations (residual %g)", cfg.MaxIterations, fx)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
