package generator

import (
	"errors"
	"fmt"
)

// ErrUnplaceable is wrapped by PlacementError.
var ErrUnplaceable = errors.New("body cannot be placed")

// ArithmeticError aborts a run when an orbit bracket is not finite. Retrying
// cannot fix it: the baseline or configuration is inconsistent.
type ArithmeticError struct {
	Body            string
	Reference       string
	MinOrbit        float64
	MaxOrbit        float64
	ReferenceRadius float64
	ReferenceSOI    float64
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("axis reaches infinity placing %s around %s: %g (radius %g) to %g (SOI %g)",
		e.Body, e.Reference, e.MinOrbit, e.ReferenceRadius, e.MaxOrbit, e.ReferenceSOI)
}

// PlacementError reports a body that could not be placed even when forced,
// because neither the drawn reference nor the star can hold it.
type PlacementError struct {
	Body      string
	Reference string
	Attempts  int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%v: %s around %s after %d attempts", ErrUnplaceable, e.Body, e.Reference, e.Attempts)
}

func (e *PlacementError) Unwrap() error {
	return ErrUnplaceable
}

// IsArithmetic reports whether err aborted a run on a non-finite bracket.
func IsArithmetic(err error) bool {
	var arithErr *ArithmeticError
	return errors.As(err, &arithErr)
}

// IsUnplaceable reports whether err aborted a run on a body no reference could hold.
func IsUnplaceable(err error) bool {
	return errors.Is(err, ErrUnplaceable)
}
