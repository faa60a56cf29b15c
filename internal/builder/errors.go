package builder

import (
	"errors"
	"fmt"

	"github.com/roach88/curveforge/internal/curve"
)

// Code is the stable, machine-readable category of a builder-layer error.
type Code string

const (
	// CodeUnknownCurveType indicates no builder is registered for a tag.
	CodeUnknownCurveType Code = "UNKNOWN_CURVE_TYPE"

	// CodeDuplicateRegistration indicates a second builder was offered for
	// an already registered tag.
	CodeDuplicateRegistration Code = "DUPLICATE_REGISTRATION"

	// CodeConstructionFailed indicates the builder rejected its inputs or
	// the curve numerics failed.
	CodeConstructionFailed Code = "CONSTRUCTION_FAILED"

	// CodeRegistrySealed indicates a write to a sealed registry.
	CodeRegistrySealed Code = "REGISTRY_SEALED"

	// CodeInternal covers every other error.
	CodeInternal Code = "INTERNAL"
)

// UnknownCurveTypeError is returned by Resolve when no builder is registered
// for Tag.
type UnknownCurveTypeError struct {
	Tag curve.Type
}

func (e *UnknownCurveTypeError) Error() string {
	return fmt.Sprintf("%s: curve type %q is not supported: no builder registered", CodeUnknownCurveType, e.Tag)
}

// DuplicateRegistrationError is returned by Register when Tag already has a
// builder. The registry is left unchanged.
type DuplicateRegistrationError struct {
	Tag curve.Type
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s: a builder for curve type %q is already registered", CodeDuplicateRegistration, e.Tag)
}

// ErrRegistrySealed is returned by Register after Seal.
var ErrRegistrySealed = errors.New("builder: registry is sealed")

// IsUnknownCurveType reports whether err is, or wraps, an UnknownCurveTypeError.
func IsUnknownCurveType(err error) bool {
	var e *UnknownCurveTypeError
	return errors.As(err, &e)
}

// IsDuplicateRegistration reports whether err is, or wraps, a
// DuplicateRegistrationError.
func IsDuplicateRegistration(err error) bool {
	var e *DuplicateRegistrationError
	return errors.As(err, &e)
}

// ErrorCode classifies err. It returns "" for a nil error.
func ErrorCode(err error) Code {
	switch {
	case err == nil:
		return ""
	case IsUnknownCurveType(err):
		return CodeUnknownCurveType
	case IsDuplicateRegistration(err):
		return CodeDuplicateRegistration
	case curve.IsConstructionError(err):
		return CodeConstructionFailed
	case errors.Is(err, ErrRegistrySealed):
		return CodeRegistrySealed
	default:
		return CodeInternal
	}
}
