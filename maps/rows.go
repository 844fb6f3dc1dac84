package maps

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	m "pfeifer.dev/polyproj/math"
	"pfeifer.dev/polyproj/utils"
)

var AXES = [3]string{"x", "y", "z"}

// RowError is a vertex row holding a value that is not a real number.
type RowError struct {
	Line  int
	Axis  string
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: coordinate %s %q is not a number: %v", e.Line, e.Axis, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ReadRows reads one vertex per line. The first line is a header and is
// skipped. Each following line holds up to three whitespace separated
// coordinates; missing coordinates are 0 and extra fields are ignored.
// Blank lines are skipped.
func ReadRows(r io.Reader) ([]m.Point, error) {
	scanner := bufio.NewScanner(r)
	points := []m.Point{}

	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			slog.Debug("skipping vertex header", "header", scanner.Text())
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var coords [3]float64
		for i := range min(len(fields), len(coords)) {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, &RowError{Line: line, Axis: AXES[i], Value: fields[i], Err: err}
			}
			coords[i] = v
		}
		points = append(points, m.NewPoint(coords[0], coords[1], coords[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read vertex rows")
	}

	if len(points) == 0 {
		return nil, m.ErrEmptyInput
	}
	return points, nil
}

func LoadRows(path string) ([]m.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open vertex file")
	}
	defer utils.LogClose(file)

	points, err := ReadRows(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse vertex file %s", path)
	}
	slog.Info("loaded vertices", "path", path, "count", len(points))
	return points, nil
}

// LoadPolyline reads path as vertex rows and builds a polyline from them.
func LoadPolyline(path string) (*m.Polyline, error) {
	points, err := LoadRows(path)
	if err != nil {
		return nil, err
	}
	return m.NewPolyline(points)
}
