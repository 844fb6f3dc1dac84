package math

import (
	m "math"
)

// Vector is the directed segment from Front to Back. Its components and
// magnitude are computed once at construction.
type Vector struct {
	front     Point
	back      Point
	x, y, z   float64
	magnitude float64
}

func NewVector(front, back Point) Vector {
	v := Vector{front: front, back: back}
	v.x = back.X - front.X
	v.y = back.Y - front.Y
	v.z = back.Z - front.Z
	v.magnitude = m.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
	return v
}

func (v Vector) Front() Point {
	return v.front
}

func (v Vector) Back() Point {
	return v.back
}

func (v Vector) X() float64 {
	return v.x
}

func (v Vector) Y() float64 {
	return v.y
}

func (v Vector) Z() float64 {
	return v.z
}

func (v Vector) Magnitude() float64 {
	return v.magnitude
}

// Singular reports whether front and back coincide.
func (v Vector) Singular() bool {
	return v.magnitude == 0
}

func (v Vector) Dot(other Vector) float64 {
	return v.x*other.x + v.y*other.y + v.z*other.z
}

// ScalarProjection projects other onto the line through v. lambda is the
// fraction of v's length from Front at which the orthogonal foot lies, so
// lambda in [0, 1] means the foot is on the segment.
func (v Vector) ScalarProjection(other Vector) (lambda float64, p Point, err error) {
	if v.Singular() {
		return 0, v.front, ErrSingularEdge
	}
	lambda = v.Dot(other) / v.Dot(v)
	p = Point{
		X: v.front.X + lambda*v.x,
		Y: v.front.Y + lambda*v.y,
		Z: v.front.Z + lambda*v.z,
	}
	return lambda, p, nil
}
