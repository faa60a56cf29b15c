// Package instrument defines the market quote records that curves are built from.
//
// Records are plain values owned by the caller. Nothing in this package
// validates quotes beyond tenor parsing; range and consistency checks belong
// to the curve that consumes them.
package instrument

// Instrument is a single market quote pinned to a maturity.
type Instrument interface {
	// Maturity is the tenor the quote applies to.
	Maturity() Tenor

	// Quote is the quoted rate as a decimal (0.05 for 5%).
	Quote() float64
}

// IRSwap is a par interest-rate swap quote: the fixed rate that prices a
// spot-starting swap of the given tenor to zero.
type IRSwap struct {
	Tenor Tenor   `json:"tenor"`
	Rate  float64 `json:"rate"`
}

func (s IRSwap) Maturity() Tenor { return s.Tenor }
func (s IRSwap) Quote() float64  { return s.Rate }

// RPISwap is a zero-coupon RPI inflation swap quote: the fixed rate K such
// that (1+K)^T is exchanged against the realised index ratio at maturity.
type RPISwap struct {
	Tenor Tenor   `json:"tenor"`
	Rate  float64 `json:"rate"`
}

func (s RPISwap) Maturity() Tenor { return s.Tenor }
func (s RPISwap) Quote() float64  { return s.Rate }

// Quote is a family-agnostic quote for curve types that have no dedicated
// record yet.
type Quote struct {
	Tenor Tenor   `json:"tenor"`
	Rate  float64 `json:"rate"`
}

func (q Quote) Maturity() Tenor { return q.Tenor }
func (q Quote) Quote() float64  { return q.Rate }
