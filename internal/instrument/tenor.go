package instrument

import (
	"fmt"
	"strconv"
	"strings"
)

// TenorUnit is the period unit of a tenor.
type TenorUnit byte

const (
	Days   TenorUnit = 'D'
	Weeks  TenorUnit = 'W'
	Months TenorUnit = 'M'
	Years  TenorUnit = 'Y'
)

// Tenor is a period length quoted the market way ("3M", "10Y").
type Tenor struct {
	Count int
	Unit  TenorUnit
}

// ParseTenor parses strings like "1W", "18M" or "30Y" (case-insensitive).
// The count must be positive.
func ParseTenor(s string) (Tenor, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Tenor{}, fmt.Errorf("invalid tenor %q: expected <count><D|W|M|Y>", s)
	}

	unit := TenorUnit(s[len(s)-1])
	switch unit {
	case Days, Weeks, Months, Years:
	default:
		return Tenor{}, fmt.Errorf("invalid tenor %q: unknown unit %q", s, string(unit))
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Tenor{}, fmt.Errorf("invalid tenor %q: %w", s, err)
	}
	if n <= 0 {
		return Tenor{}, fmt.Errorf("invalid tenor %q: count must be positive", s)
	}

	return Tenor{Count: n, Unit: unit}, nil
}

// MustParseTenor is like ParseTenor but panics on error.
// Use only in tests or for literals known to be valid.
func MustParseTenor(s string) Tenor {
	t, err := ParseTenor(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Years converts the tenor to a year fraction using a 365-day year for
// day and week tenors.
func (t Tenor) Years() float64 {
	switch t.Unit {
	case Days:
		return float64(t.Count) / 365
	case Weeks:
		return float64(t.Count) * 7 / 365
	case Months:
		return float64(t.Count) / 12
	case Years:
		return float64(t.Count)
	default:
		return 0
	}
}

// IsZero reports whether t is the zero Tenor.
func (t Tenor) IsZero() bool {
	return t.Count == 0 && t.Unit == 0
}

func (t Tenor) String() string {
	if t.IsZero() {
		return ""
	}
	return strconv.Itoa(t.Count) + string(t.Unit)
}
