package math

// Projection is the nearest point on a single edge to a query point.
type Projection struct {
	Edge     int     // index of the edge, vertex Edge to vertex Edge+1
	Param    float64 // position along the edge, clamped to [0, 1]
	Point    Point
	Distance float64 // distance from the query point to Point
}

// Result holds every projection that ties for the minimum distance to a
// query point, in ascending edge order.
type Result struct {
	Query       Point
	Distance    float64
	Projections []Projection
}

func (r Result) Count() int {
	return len(r.Projections)
}

func (r Result) Edges() []int {
	edges := make([]int, len(r.Projections))
	for i, p := range r.Projections {
		edges[i] = p.Edge
	}
	return edges
}
