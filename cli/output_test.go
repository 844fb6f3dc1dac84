package cli

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pm "pfeifer.dev/polyproj/math"
)

func TestRender(t *testing.T) {
	p, err := pm.NewPolyline([]pm.Point{pm.NewPoint(0, 0, 0), pm.NewPoint(10, 0, 0)})
	require.NoError(t, err)
	res, err := p.Project(pm.NewPoint(5, 5, 0))
	require.NoError(t, err)

	out := Render(res, 6)
	assert.Contains(t, out, "number of solutions: 1")
	assert.Contains(t, out, "segment number: 0, projection parameter: 0.5, point of projection: (5, 0, 0)\n")
}

func TestRenderPrecision(t *testing.T) {
	res := pm.Result{Projections: []pm.Projection{{Edge: 2, Param: 1.0 / 3, Point: pm.NewPoint(1.0/3, 0, 0)}}}
	assert.Contains(t, Render(res, 3), "projection parameter: 0.333, point of projection: (0.333, 0, 0)")
	assert.Contains(t, Render(res, -1), "projection parameter: 0.3333333333333333,")
}

func TestRenderInfo(t *testing.T) {
	p, err := pm.NewPolyline([]pm.Point{
		pm.NewPoint(0, 0, 0), pm.NewPoint(4, 0, 0), pm.NewPoint(0, 3, 0), pm.NewPoint(0, 0, 0),
	})
	require.NoError(t, err)

	out := RenderInfo(p, 6)
	assert.Contains(t, out, "vertices: 4\n")
	assert.Contains(t, out, "edges: 3\n")
	assert.Contains(t, out, "closed: true\n")
	assert.Contains(t, out, "length: 12\n")
	assert.Contains(t, out, "bounds: (0, 0, 0) - (4, 3, 0)\n")
	assert.Contains(t, out, "size: (4, 3, 0)\n")
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, RenderError(errors.New("boom")), "error: boom")
}
