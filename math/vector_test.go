package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	v := NewVector(NewPoint(1, 2, 3), NewPoint(4, 6, 3))
	assert.Equal(t, 3.0, v.X())
	assert.Equal(t, 4.0, v.Y())
	assert.Equal(t, 0.0, v.Z())
	assert.Equal(t, 5.0, v.Magnitude())
	assert.False(t, v.Singular())
	assert.Equal(t, NewPoint(1, 2, 3), v.Front())
	assert.Equal(t, NewPoint(4, 6, 3), v.Back())
}

func TestVectorDot(t *testing.T) {
	a := NewVector(NewPoint(0, 0, 0), NewPoint(1, 2, 3))
	b := NewVector(NewPoint(1, 1, 1), NewPoint(5, 6, 7))
	assert.Equal(t, 4.0+10.0+18.0, a.Dot(b))
	assert.Equal(t, a.Dot(b), b.Dot(a))
}

func TestScalarProjection(t *testing.T) {
	edge := NewVector(NewPoint(0, 0, 0), NewPoint(10, 0, 0))

	lambda, p, err := edge.ScalarProjection(NewVector(NewPoint(0, 0, 0), NewPoint(5, 5, 0)))
	require.NoError(t, err)
	assert.Equal(t, 0.5, lambda)
	assert.Equal(t, NewPoint(5, 0, 0), p)

	// outside the segment the parameter is not clamped
	lambda, p, err = edge.ScalarProjection(NewVector(NewPoint(0, 0, 0), NewPoint(-3, 4, 0)))
	require.NoError(t, err)
	assert.Equal(t, -0.3, lambda)
	assert.Equal(t, NewPoint(-3, 0, 0), p)
}

func TestScalarProjectionSingular(t *testing.T) {
	edge := NewVector(NewPoint(1, 1, 1), NewPoint(1, 1, 1))
	assert.True(t, edge.Singular())

	_, p, err := edge.ScalarProjection(NewVector(NewPoint(1, 1, 1), NewPoint(0, 0, 0)))
	assert.ErrorIs(t, err, ErrSingularEdge)
	assert.Equal(t, NewPoint(1, 1, 1), p)
}

func TestPointEquals(t *testing.T) {
	assert.True(t, NewPoint(1, 2, 3).Equals(NewPoint(1, 2, 3)))
	assert.False(t, NewPoint(1, 2, 3).Equals(NewPoint(1, 2, 3.0000001)))
	assert.True(t, Point{}.Equals(NewPoint(0, 0, 0)))
	assert.Equal(t, "(1, -2.5, 0)", NewPoint(1, -2.5, 0).String())
	assert.Equal(t, 5.0, NewPoint(0, 0, 0).DistanceTo(NewPoint(0, 3, 4)))
}
