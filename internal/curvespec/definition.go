// Package curvespec loads curve definitions written in CUE and compiles them
// into typed instruments and instructions.
//
// A definitions directory holds one or more .cue files of the same package,
// each contributing entries under the top-level "curve" struct:
//
//	curve: usd_sofr: {
//	    type: "IRS"
//	    instructions: {interpolation: "log_linear", day_count: "ACT/360", fixed_frequency: 1}
//	    instruments: [{tenor: "1Y", rate: 0.0525}, {tenor: "2Y", rate: 0.0490}]
//	}
//
// Decoding is a static switch over the curve type. Types without a dedicated
// record decode to instrument.Quote and instructions.Generic, so whether a
// type can be built is decided by the builder registry, not the loader.
package curvespec

import (
	"cuelang.org/go/cue/token"

	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
	"github.com/roach88/curveforge/internal/ir"
)

// Definition is one compiled curve definition.
type Definition struct {
	Name         string                    `json:"name"`
	Description  string                    `json:"description,omitempty"`
	Type         curve.Type                `json:"type"`
	Instruments  []instrument.Instrument   `json:"instruments"`
	Instructions instructions.Instructions `json:"instructions"`

	// Hash is the content-addressed identity of the definition.
	Hash string `json:"hash"`

	// Pos is where the definition starts in its CUE source, if known.
	Pos token.Pos `json:"-"`
}

// Canonical returns the hashable form of the definition. The description is
// not part of the identity.
func (d *Definition) Canonical() ir.Object {
	insts := make(ir.Array, len(d.Instruments))
	for i, inst := range d.Instruments {
		insts[i] = ir.Object{
			"tenor": ir.String(inst.Maturity().String()),
			"rate":  ir.Decimal(inst.Quote()),
		}
	}

	return ir.Object{
		"name":           ir.String(d.Name),
		"type":           ir.String(d.Type),
		"instruments":    insts,
		"instructions":   canonicalInstructions(d.Instructions),
		"schema_version": ir.String(ir.SchemaVersion),
	}
}

func canonicalInstructions(instr instructions.Instructions) ir.Object {
	switch v := instr.(type) {
	case instructions.IRSwapCurve:
		return ir.Object{
			"interpolation":   ir.String(v.Interpolation),
			"day_count":       ir.String(v.DayCount),
			"fixed_frequency": ir.Int(v.FixedFrequency),
		}
	case instructions.RPISwapCurve:
		return ir.Object{
			"interpolation":    ir.String(v.Interpolation),
			"base_index":       ir.Decimal(v.BaseIndex),
			"index_lag_months": ir.Int(v.IndexLagMonths),
		}
	case instructions.Generic:
		opts := make(ir.Object, len(v.Options))
		for k, o := range v.Options {
			opts[k] = ir.String(o)
		}
		return ir.Object{
			"interpolation": ir.String(v.Interpolation),
			"options":       opts,
		}
	default:
		return ir.Object{}
	}
}
