package math

import (
	"fmt"
	m "math"
	"strconv"
)

func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Point is a coordinate in 3D space. The zero value is the origin.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Equals compares each component exactly, without tolerance.
func (p Point) Equals(other Point) bool {
	return p.X == other.X && p.Y == other.Y && p.Z == other.Z
}

func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y, Z: p.Z + other.Z}
}

func (p Point) Subtract(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor, Z: p.Z * factor}
}

func (p Point) DistanceTo(end Point) float64 {
	return NewVector(p, end).Magnitude()
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// validate rejects NaN and infinite components, naming the first bad axis.
func (p Point) validate() error {
	for _, c := range []struct {
		axis string
		v    float64
	}{{"x", p.X}, {"y", p.Y}, {"z", p.Z}} {
		if m.IsNaN(c.v) || m.IsInf(c.v, 0) {
			return &CoordinateError{Axis: c.axis, Value: strconv.FormatFloat(c.v, 'g', -1, 64)}
		}
	}
	return nil
}
