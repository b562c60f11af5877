package financing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTerm is returned when an amortization term is shorter than one month.
	ErrInvalidTerm = errors.New("term must be at least one month")

	// ErrUnknownMode is returned when a mode configuration is not recognized.
	ErrUnknownMode = errors.New("unknown financing mode")

	// ErrNotFinite is returned when text parses to NaN or Inf, or when finite
	// inputs drive a calculation out of float64 range.
	ErrNotFinite = errors.New("value is not a finite number")
)

// ParseError reports decimal text that could not be normalized into a number.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid decimal input %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
