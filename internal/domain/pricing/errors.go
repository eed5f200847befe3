package pricing

import (
	"errors"
	"fmt"
)

// Validation rules. ValidationError wraps one of these so callers can match
// the failed rule with errors.Is.
var (
	ErrOrdersNotArray = errors.New("orders should be an array")
	ErrOrdersEmpty    = errors.New("orders cannot be empty")
	ErrMissingField   = errors.New("each order must include type, item, units, rate, and margin")
	ErrInvalidMode    = errors.New("unknown pricing mode")
	ErrMalformedOrder = errors.New("malformed order")
)

// ValidationError reports malformed or incomplete order input.
//
// Index is the position of the offending order line, or -1 when the rule
// applies to the whole sequence.
type ValidationError struct {
	Index int
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return e.Err.Error()
	case e.Field != "":
		return fmt.Sprintf("order %d: %s (%s)", e.Index, e.Err, e.Field)
	default:
		return fmt.Sprintf("order %d: %s", e.Index, e.Err)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func sequenceError(err error) *ValidationError {
	return &ValidationError{Index: -1, Err: err}
}

// NewSequenceError builds a ValidationError for a rule that applies to the
// whole order list.
func NewSequenceError(err error) error {
	return sequenceError(err)
}

// CalculationError reports an order line whose price is numerically
// undefined: a margin of 100 or more, or a cost or price too large to be
// represented. Index is -1 when the estimate total overflows.
type CalculationError struct {
	Index  int
	Margin float64
	Reason string
}

func (e *CalculationError) Error() string {
	switch {
	case e.Reason == "":
		return fmt.Sprintf("order %d: margin %v%% leaves no room for cost, price is undefined", e.Index, e.Margin)
	case e.Index < 0:
		return e.Reason
	default:
		return fmt.Sprintf("order %d: %s", e.Index, e.Reason)
	}
}
