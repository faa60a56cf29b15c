package curve

import (
	"cmp"
	"slices"

	"github.com/roach88/curveforge/internal/instrument"
)

// quote is an instrument reduced to what the solvers need.
type quote struct {
	tenor string
	t     float64
	rate  float64
}

// normalizeQuotes validates insts and returns them sorted by maturity.
// The caller's slice is not modified.
func normalizeQuotes[T instrument.Instrument](tag Type, insts []T) ([]quote, error) {
	if len(insts) == 0 {
		return nil, NewMalformedInstrumentError(tag, "no instruments supplied")
	}

	qs := make([]quote, 0, len(insts))
	seen := make(map[float64]string, len(insts))
	for i, inst := range insts {
		m := inst.Maturity()
		t := m.Years()
		if m.IsZero() || !(t > 0) {
			return nil, NewMalformedInstrumentError(tag, "instrument %d: maturity must be a positive tenor", i)
		}

		r := inst.Quote()
		if !isFinite(r) {
			return nil, NewMalformedInstrumentError(tag, "instrument %d (%s): rate is not finite", i, m)
		}
		if r <= -1 {
			return nil, NewMalformedInstrumentError(tag, "instrument %d (%s): rate %g is at or below -100%%", i, m, r)
		}

		if prev, dup := seen[t]; dup {
			return nil, NewMalformedInstrumentError(tag, "instrument %d (%s): duplicate maturity (same as %s)", i, m, prev)
		}
		seen[t] = m.String()

		qs = append(qs, quote{tenor: m.String(), t: t, rate: r})
	}

	slices.SortStableFunc(qs, func(a, b quote) int {
		return cmp.Compare(a.t, b.t)
	})
	return qs, nil
}
