package maps

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"

	m "pfeifer.dev/polyproj/math"
	"pfeifer.dev/polyproj/utils"
)

var ErrWayNotFound = errors.New("way not found in map file")

// LoadOSMWay reads the nodes of one way from an osm pbf file as vertices,
// with longitude as X, latitude as Y and Z zero. Files without locations on
// ways are resolved with a second pass over the nodes.
func LoadOSMWay(ctx context.Context, path string, id int64) ([]m.Point, error) {
	way, err := findWay(ctx, path, osm.WayID(id))
	if err != nil {
		return nil, err
	}
	if len(way.Nodes) == 0 {
		return nil, m.ErrEmptyInput
	}

	missing := map[osm.NodeID]bool{}
	for _, n := range way.Nodes {
		if n.Lat == 0 && n.Lon == 0 {
			missing[n.ID] = true
		}
	}

	locations := map[osm.NodeID]m.Point{}
	if len(missing) > 0 {
		slog.Debug("way nodes have no locations, scanning nodes", "way", id, "missing", len(missing))
		locations, err = findNodes(ctx, path, missing)
		if err != nil {
			return nil, err
		}
	}

	points := make([]m.Point, len(way.Nodes))
	for i, n := range way.Nodes {
		if missing[n.ID] {
			loc, ok := locations[n.ID]
			if !ok {
				return nil, errors.Errorf("node %d of way %d not found in map file", n.ID, id)
			}
			points[i] = loc
			continue
		}
		points[i] = m.NewPoint(n.Lon, n.Lat, 0)
	}
	slog.Info("loaded way", "path", path, "way", id, "count", len(points))
	return points, nil
}

func findWay(ctx context.Context, path string, id osm.WayID) (*osm.Way, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open map pbf file")
	}
	defer utils.LogClose(file)

	// The third parameter is the number of parallel decoders to use.
	scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	defer utils.LogClose(scanner)

	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if ok && way.ID == id {
			return way, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not scan ways")
	}
	return nil, errors.Wrapf(ErrWayNotFound, "way %d", id)
}

func findNodes(ctx context.Context, path string, ids map[osm.NodeID]bool) (map[osm.NodeID]m.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open map pbf file")
	}
	defer utils.LogClose(file)

	scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
	scanner.SkipWays = true
	scanner.SkipRelations = true
	defer utils.LogClose(scanner)

	found := make(map[osm.NodeID]m.Point, len(ids))
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok || !ids[node.ID] {
			continue
		}
		found[node.ID] = m.NewPoint(node.Lon, node.Lat, 0)
		if len(found) == len(ids) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not scan nodes")
	}
	return found, nil
}
