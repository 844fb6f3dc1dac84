package math

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned when a polyline is built from no vertices.
	ErrEmptyInput = errors.New("polyline has no vertices")
	// ErrDegenerateGeometry is returned when a polyline has no edges to project onto.
	ErrDegenerateGeometry = errors.New("polyline has fewer than one edge")
	ErrSingularEdge       = errors.New("scalar projection onto a zero length edge")
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrInvalidTolerance   = errors.New("tie tolerance must be a non-negative finite number")
)

// CoordinateError reports a query coordinate that could not be read as a
// real number.
type CoordinateError struct {
	Axis  string
	Value string
	Err   error
}

func (e *CoordinateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input value of coordinate %s is invalid: %q: %v", e.Axis, e.Value, e.Err)
	}
	return fmt.Sprintf("input value of coordinate %s is invalid: %q", e.Axis, e.Value)
}

func (e *CoordinateError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidCoordinate}
	}
	return []error{ErrInvalidCoordinate, e.Err}
}
