package pairs

import (
	"errors"
	"fmt"
)

// ErrResolutionTie means take-profit and stop-loss held at the same lookahead offset.
// The two conditions are strict and disjoint, so this is an invariant violation.
var ErrResolutionTie = errors.New("take-profit and stop-loss resolved at the same offset")

// ValidationError reports malformed configuration or input, detected before computation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AlignmentError reports two series that cannot be paired.
type AlignmentError struct {
	Reason string
}

func (e *AlignmentError) Error() string {
	return "alignment: " + e.Reason
}

func invalid(field, format string, a ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, a...)}
}
