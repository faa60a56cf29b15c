package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/curvespec"
	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
	"github.com/roach88/curveforge/internal/store"
)

// OpenStore opens a file-backed store in a per-test temp dir and closes it
// when the test ends.
func OpenStore(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "curveforge.db"))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// IRSDefinition returns an annual ACT/365F linear IRS definition quoting
// rate at every tenor. With rate 0.25 and tenors 1Y, 2Y the discount
// factors are exactly 0.8 and 0.64.
func IRSDefinition(name string, rate float64, tenors ...string) *curvespec.Definition {
	insts := make([]instrument.Instrument, len(tenors))
	for i, tn := range tenors {
		insts[i] = instrument.IRSwap{Tenor: instrument.MustParseTenor(tn), Rate: rate}
	}
	return &curvespec.Definition{
		Name:        name,
		Type:        curve.TypeIRS,
		Instruments: insts,
		Instructions: instructions.IRSwapCurve{
			Interpolation:  instructions.Linear,
			DayCount:       instructions.Act365Fixed,
			FixedFrequency: 1,
		},
		Hash: fmt.Sprintf("fixture-%s", name),
	}
}

// RPIDefinition returns an unlagged log-linear RPI definition on base 100.
func RPIDefinition(name string, rate float64, tenors ...string) *curvespec.Definition {
	insts := make([]instrument.Instrument, len(tenors))
	for i, tn := range tenors {
		insts[i] = instrument.RPISwap{Tenor: instrument.MustParseTenor(tn), Rate: rate}
	}
	return &curvespec.Definition{
		Name:         name,
		Type:         curve.TypeRPISwapInflation,
		Instruments:  insts,
		Instructions: instructions.RPISwapCurve{Interpolation: instructions.LogLinear, BaseIndex: 100},
		Hash:         fmt.Sprintf("fixture-%s", name),
	}
}

// UnsupportedDefinition returns a CREDIT_SWAP definition, a known curve type
// with no registered builder.
func UnsupportedDefinition(name string) *curvespec.Definition {
	return &curvespec.Definition{
		Name:         name,
		Type:         curve.TypeCreditSwap,
		Instruments:  []instrument.Instrument{instrument.Quote{Tenor: instrument.MustParseTenor("5Y"), Rate: 0.0085}},
		Instructions: instructions.Generic{Interpolation: instructions.Linear},
		Hash:         fmt.Sprintf("fixture-%s", name),
	}
}
