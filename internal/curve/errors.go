package curve

import (
	"errors"
	"fmt"
)

// ConstructionKind categorizes why a curve could not be built.
type ConstructionKind string

const (
	// KindMalformedInstrument covers empty instrument sets, bad tenors,
	// duplicate maturities, non-finite quotes and wrongly typed records.
	KindMalformedInstrument ConstructionKind = "MALFORMED_INSTRUMENT"

	// KindUnsupportedInstructions covers instruction values or combinations
	// the curve does not implement.
	KindUnsupportedInstructions ConstructionKind = "UNSUPPORTED_INSTRUCTIONS"

	// KindNumericalFailure covers solver non-convergence and results outside
	// the admissible range.
	KindNumericalFailure ConstructionKind = "NUMERICAL_FAILURE"
)

// ConstructionError is returned when a curve cannot be built from the given
// instruments and instructions. No partially built curve accompanies it.
type ConstructionError struct {
	// Kind identifies the error category.
	Kind ConstructionKind

	// Tag is the curve family that was being built.
	Tag Type

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConstructionError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Tag, e.Kind, e.Message)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// IsConstructionError reports whether err is, or wraps, a ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}

// KindOf returns the construction kind carried by err.
func KindOf(err error) (ConstructionKind, bool) {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

func constructionErrorf(tag Type, kind ConstructionKind, format string, args ...any) *ConstructionError {
	return &ConstructionError{
		Kind:    kind,
		Tag:     tag,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewMalformedInstrumentError creates a ConstructionError of kind
// KindMalformedInstrument.
func NewMalformedInstrumentError(tag Type, format string, args ...any) *ConstructionError {
	return constructionErrorf(tag, KindMalformedInstrument, format, args...)
}

// NewUnsupportedInstructionsError creates a ConstructionError of kind
// KindUnsupportedInstructions.
func NewUnsupportedInstructionsError(tag Type, format string, args ...any) *ConstructionError {
	return constructionErrorf(tag, KindUnsupportedInstructions, format, args...)
}
