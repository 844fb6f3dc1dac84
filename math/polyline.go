package math

import (
	"context"
	"log/slog"
	m "math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Polyline is an ordered sequence of vertices. Edge i joins vertex i to
// vertex i+1. When the first and last vertices are equal the polyline is
// closed, and the last edge already returns to the start so no extra
// wrap-around edge is considered.
type Polyline struct {
	vertices []Point
	closed   bool
}

func NewPolyline(vertices []Point) (*Polyline, error) {
	if len(vertices) == 0 {
		return nil, ErrEmptyInput
	}
	p := &Polyline{vertices: make([]Point, len(vertices))}
	copy(p.vertices, vertices)
	p.closed = p.vertices[0].Equals(p.vertices[len(p.vertices)-1])
	return p, nil
}

// Vertices returns a copy of the vertex sequence.
func (p *Polyline) Vertices() []Point {
	res := make([]Point, len(p.vertices))
	copy(res, p.vertices)
	return res
}

func (p *Polyline) Len() int {
	return len(p.vertices)
}

func (p *Polyline) Closed() bool {
	return p.closed
}

func (p *Polyline) Edges() int {
	return len(p.vertices) - 1
}

func (p *Polyline) Edge(i int) Vector {
	return NewVector(p.vertices[i], p.vertices[i+1])
}

func (p *Polyline) Length() float64 {
	total := 0.0
	for i := range p.Edges() {
		total += p.Edge(i).Magnitude()
	}
	return total
}

func (p *Polyline) Bounds() Box {
	b := Box{Min: p.vertices[0], Max: p.vertices[0]}
	for _, v := range p.vertices[1:] {
		b = b.extend(v)
	}
	return b
}

type projectConfig struct {
	tolerance float64
}

type ProjectOption func(*projectConfig)

// WithTolerance reports every edge whose distance is within tolerance of the
// minimum instead of requiring exact equality. Zero keeps exact comparison.
func WithTolerance(tolerance float64) ProjectOption {
	return func(c *projectConfig) {
		c.tolerance = tolerance
	}
}

// Project finds the nearest point on each edge to q and returns those that
// tie for the minimum distance.
func (p *Polyline) Project(q Point, opts ...ProjectOption) (Result, error) {
	cfg := projectConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tolerance < 0 || m.IsNaN(cfg.tolerance) || m.IsInf(cfg.tolerance, 0) {
		return Result{}, ErrInvalidTolerance
	}
	if p.Edges() < 1 {
		return Result{}, ErrDegenerateGeometry
	}
	if err := q.validate(); err != nil {
		return Result{}, err
	}

	all := make([]Projection, p.Edges())
	all[0] = nearestOnEdge(0, p.Edge(0), q)
	minDist := all[0].Distance
	minIndices := []int{0}
	for i := 1; i < len(all); i++ {
		all[i] = nearestOnEdge(i, p.Edge(i), q)
		d := all[i].Distance
		if d < minDist {
			minDist = d
			minIndices = minIndices[:0]
			minIndices = append(minIndices, i)
		} else if d == minDist {
			minIndices = append(minIndices, i)
		}
	}

	res := Result{Query: q, Distance: minDist}
	if cfg.tolerance == 0 {
		res.Projections = make([]Projection, 0, len(minIndices))
		for _, i := range minIndices {
			res.Projections = append(res.Projections, all[i])
		}
	} else {
		for _, proj := range all {
			if proj.Distance-minDist <= cfg.tolerance {
				res.Projections = append(res.Projections, proj)
			}
		}
	}

	slog.Debug("projected point onto polyline",
		"query", q,
		"edges", len(all),
		"closed", p.closed,
		"distance", minDist,
		"solutions", res.Count(),
	)
	return res, nil
}

// ProjectMany runs Project for each query concurrently. Results are returned
// in the order of queries. The first error cancels the remaining work.
func (p *Polyline) ProjectMany(ctx context.Context, queries []Point, opts ...ProjectOption) ([]Result, error) {
	results := make([]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(-1))
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.Project(q, opts...)
			if err != nil {
				return errors.Wrapf(err, "could not project query %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
