package curve

import (
	"fmt"
	"slices"
	"strings"
)

// Type identifies a curve family. It is the key the builder registry
// dispatches on.
type Type string

const (
	// TypeRPISwapInflation is the RPI zero-coupon inflation swap curve.
	TypeRPISwapInflation Type = "RPI_SWAP_INFLATION"

	// TypeIRS is the interest-rate swap discount curve.
	TypeIRS Type = "IRS"

	// TypeCreditSwap is the credit default swap curve. It is a recognised
	// tag, but no builder ships for it yet.
	TypeCreditSwap Type = "CREDIT_SWAP"
)

// knownTypes lists every tag in declaration order.
var knownTypes = []Type{
	TypeRPISwapInflation,
	TypeIRS,
	TypeCreditSwap,
}

// Types returns all known curve types in declaration order.
func Types() []Type {
	return slices.Clone(knownTypes)
}

// ParseType maps a spelling such as "irs" or "RPI_SWAP_INFLATION" to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown curve type %q: must be one of %v", s, knownTypes)
	}
	return t, nil
}

// Valid reports whether t is one of the known curve types.
func (t Type) Valid() bool {
	return slices.Contains(knownTypes, t)
}

func (t Type) String() string {
	return string(t)
}
