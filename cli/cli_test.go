package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pm "pfeifer.dev/polyproj/math"
	"pfeifer.dev/polyproj/params"
	ms "pfeifer.dev/polyproj/settings"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := params.ParamsPath
	params.ParamsPath = filepath.Join(dir, "params", "d")
	t.Cleanup(func() {
		params.ParamsPath = old
		ms.Settings = ms.PolyprojSettings{}
	})

	path := filepath.Join(dir, "coord.txt")
	require.NoError(t, os.WriteFile(path, []byte("x y z\n0 0 0\n4 0 0\n0 3 0\n0 0 0\n"), 0o644))
	return path
}

func run(t *testing.T, serve ServeFunc, args ...string) (string, error) {
	t.Helper()
	cmd := Command(serve)
	out := &bytes.Buffer{}
	cmd.Writer = out
	cmd.ErrWriter = &bytes.Buffer{}
	err := cmd.Run(context.Background(), append([]string{"polyproj"}, args...))
	return out.String(), err
}

func noServe(ctx context.Context, p *pm.Polyline) error {
	return nil
}

func TestProjectCommand(t *testing.T) {
	path := setup(t)

	out, err := run(t, noServe, "--vertices", path, "project", "--x", "2", "--y", "-1", "--z", "0")
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("number of solutions: 1")))
	assert.Contains(t, out, "segment number: 0, projection parameter: 0.5, point of projection: (2, 0, 0)")

	last, ok := ms.LoadLastQuery()
	require.True(t, ok)
	assert.Equal(t, pm.NewPoint(2, -1, 0), last)
}

func TestProjectCommandBatch(t *testing.T) {
	path := setup(t)

	out, err := run(t, noServe, "--vertices", path, "project", "--point", "2 -1 0", "--point=-1 -1 0")
	require.NoError(t, err)
	assert.Contains(t, out, "number of solutions: 1")
	assert.Contains(t, out, "number of solutions: 2")
	assert.Contains(t, out, "segment number: 2, projection parameter: 1, point of projection: (0, 0, 0)")
}

func TestProjectCommandInvalid(t *testing.T) {
	path := setup(t)

	_, err := run(t, noServe, "--vertices", path, "project", "--x", "abc")
	require.ErrorIs(t, err, pm.ErrInvalidCoordinate)

	_, err = run(t, noServe, "--vertices", path, "project")
	assert.Error(t, err)

	single := filepath.Join(t.TempDir(), "single.txt")
	require.NoError(t, os.WriteFile(single, []byte("x y z\n1 1 1\n"), 0o644))
	_, err = run(t, noServe, "--vertices", single, "project", "--x", "0")
	assert.ErrorIs(t, err, pm.ErrDegenerateGeometry)
}

func TestInfoCommand(t *testing.T) {
	path := setup(t)

	out, err := run(t, noServe, "--vertices", path, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "closed: true")
	assert.Contains(t, out, "edges: 3")
}

func TestSettingsCommand(t *testing.T) {
	setup(t)

	_, err := run(t, noServe, "settings", "set", "precision", "3")
	require.NoError(t, err)

	out, err := run(t, noServe, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "precision: 3\n")

	_, err = run(t, noServe, "settings", "set", "precision")
	assert.Error(t, err)

	ms.SaveLastQuery(pm.NewPoint(1, 2, 3))
	_, err = run(t, noServe, "settings", "reset")
	require.NoError(t, err)
	_, ok := ms.LoadLastQuery()
	assert.False(t, ok)

	out, err = run(t, noServe, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "precision: 6\n")
}

func TestBeforeCreatesParamsDirectory(t *testing.T) {
	setup(t)

	_, err := run(t, noServe, "settings", "show")
	require.NoError(t, err)
	info, err := os.Stat(params.ParamsPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestServeAction(t *testing.T) {
	path := setup(t)

	var served *pm.Polyline
	_, err := run(t, func(ctx context.Context, p *pm.Polyline) error {
		served = p
		return nil
	}, "--vertices", path)
	require.NoError(t, err)
	require.NotNil(t, served)
	assert.Equal(t, 4, served.Len())
}

func TestInteractiveModel(t *testing.T) {
	setup(t)
	p, err := pm.NewPolyline([]pm.Point{pm.NewPoint(0, 0, 0), pm.NewPoint(10, 0, 0)})
	require.NoError(t, err)

	var mdl tea.Model = newInteractiveModel(p, 6, nil)
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("5")},
		{Type: tea.KeyTab},
		{Type: tea.KeyRunes, Runes: []rune("5")},
		{Type: tea.KeyTab},
		{Type: tea.KeyRunes, Runes: []rune("0")},
		{Type: tea.KeyEnter},
	}
	for _, k := range keys {
		mdl, _ = mdl.Update(k)
	}

	view := mdl.View()
	assert.Contains(t, view, "number of solutions: 1")
	assert.Contains(t, view, "point of projection: (5, 0, 0)")

	mdl, _ = mdl.Update(tea.KeyMsg{Type: tea.KeyTab})
	mdl, _ = mdl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	mdl, _ = mdl.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, mdl.View(), "coordinate x is invalid")
}
