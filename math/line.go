package math

// nearestOnEdge projects q onto edge i, clamping the foot of the
// perpendicular to the segment's endpoints.
func nearestOnEdge(i int, edge Vector, q Point) Projection {
	if edge.Singular() {
		return Projection{Edge: i, Param: 0, Point: edge.Front(), Distance: q.DistanceTo(edge.Front())}
	}

	t, closest, err := edge.ScalarProjection(NewVector(edge.Front(), q))
	if err != nil {
		// unreachable, singular edges are handled above
		return Projection{Edge: i, Point: edge.Front(), Distance: q.DistanceTo(edge.Front())}
	}

	if t < 0 {
		t = 0
		closest = edge.Front()
	} else if t > 1 {
		t = 1
		closest = edge.Back()
	}
	return Projection{Edge: i, Param: t, Point: closest, Distance: q.DistanceTo(closest)}
}
