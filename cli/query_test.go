package cli

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pm "pfeifer.dev/polyproj/math"
)

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("1", " -2.5 ", "3e2")
	require.NoError(t, err)
	assert.Equal(t, pm.NewPoint(1, -2.5, 300), q)
}

func TestParseQueryInvalid(t *testing.T) {
	tests := []struct {
		x, y, z string
		axis    string
	}{
		{"a", "0", "0", "x"},
		{"0", "", "0", "y"},
		{"0", "0", "NaN", "z"},
		{"0", "inf", "0", "y"},
	}
	for _, tt := range tests {
		_, err := ParseQuery(tt.x, tt.y, tt.z)
		require.ErrorIs(t, err, pm.ErrInvalidCoordinate)
		var cerr *pm.CoordinateError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, tt.axis, cerr.Axis)
		assert.Contains(t, err.Error(), "coordinate "+tt.axis)
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint("5, 5, 0")
	require.NoError(t, err)
	assert.Equal(t, pm.NewPoint(5, 5, 0), p)

	p, err = ParsePoint("-3 4 0")
	require.NoError(t, err)
	assert.Equal(t, pm.NewPoint(-3, 4, 0), p)

	_, err = ParsePoint("1 2")
	assert.Error(t, err)
}
