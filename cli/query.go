package cli

import (
	m "math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	pm "pfeifer.dev/polyproj/math"
)

// ParseCoordinate reads one query coordinate. Values that are not finite
// real numbers are reported with the axis they were given for.
func ParseCoordinate(axis string, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &pm.CoordinateError{Axis: axis, Value: value, Err: err}
	}
	if m.IsNaN(v) || m.IsInf(v, 0) {
		return 0, &pm.CoordinateError{Axis: axis, Value: value, Err: errors.New("not a finite number")}
	}
	return v, nil
}

func ParseQuery(x, y, z string) (pm.Point, error) {
	var coords [3]float64
	for i, value := range []string{x, y, z} {
		v, err := ParseCoordinate(axes[i], value)
		if err != nil {
			return pm.Point{}, err
		}
		coords[i] = v
	}
	return pm.NewPoint(coords[0], coords[1], coords[2]), nil
}

// ParsePoint reads "x y z" or "x,y,z". All three coordinates are required.
func ParsePoint(value string) (pm.Point, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return pm.Point{}, errors.Errorf("point %q must have exactly three coordinates", value)
	}
	return ParseQuery(fields[0], fields[1], fields[2])
}

var axes = [3]string{"x", "y", "z"}
