package math

type Box struct {
	Min Point
	Max Point
}

func (b Box) Size() Point {
	return b.Max.Subtract(b.Min)
}

func (b Box) extend(p Point) Box {
	return Box{
		Min: Point{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)},
		Max: Point{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)},
	}
}
