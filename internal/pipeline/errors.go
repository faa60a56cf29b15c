package pipeline

import (
	"errors"
	"fmt"

	"github.com/roach88/curveforge/internal/builder"
	"github.com/roach88/curveforge/internal/curve"
)

// StoreError reports a failure to persist a build. It aborts the run.
type StoreError struct {
	RunID string
	Curve string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("run %s: persist %s: %v", e.RunID, e.Curve, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err is, or wraps, a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// FailureCode returns the code recorded for a failed build: the construction
// kind when the curve numerics or input checks failed, otherwise the
// registry's error code.
func FailureCode(err error) string {
	if kind, ok := curve.KindOf(err); ok {
		return string(kind)
	}
	return string(builder.ErrorCode(err))
}
