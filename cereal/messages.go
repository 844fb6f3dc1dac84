package cereal

import (
	m "math"

	"capnproto.org/go/capnp/v3"
	"github.com/pkg/errors"

	pm "pfeifer.dev/polyproj/math"
)

// Messages are plain capnp structs laid out by hand:
//
//	Query      data: id, x, y, z
//	Result     data: id, distance, ok, x, y, z   pointers: projections, error
//	Projection data: edge, param, x, y, z, distance
var (
	querySize      = capnp.ObjectSize{DataSize: 32}
	resultSize     = capnp.ObjectSize{DataSize: 48, PointerCount: 2}
	projectionSize = capnp.ObjectSize{DataSize: 48}
)

type Query struct {
	ID    uint64
	Point pm.Point
}

type Result struct {
	ID     uint64
	Result pm.Result
	Err    string
}

func (r Result) OK() bool {
	return r.Err == ""
}

func setFloat64(s capnp.Struct, off capnp.DataOffset, v float64) {
	s.SetUint64(off, m.Float64bits(v))
}

func float64At(s capnp.Struct, off capnp.DataOffset) float64 {
	return m.Float64frombits(s.Uint64(off))
}

func setPoint(s capnp.Struct, off capnp.DataOffset, p pm.Point) {
	setFloat64(s, off, p.X)
	setFloat64(s, off+8, p.Y)
	setFloat64(s, off+16, p.Z)
}

func pointAt(s capnp.Struct, off capnp.DataOffset) pm.Point {
	return pm.NewPoint(float64At(s, off), float64At(s, off+8), float64At(s, off+16))
}

func newMessage() (*capnp.Message, *capnp.Segment) {
	arena := capnp.SingleSegment(nil)

	msg, seg, err := capnp.NewMessage(arena)
	if err != nil {
		panic(err)
	}
	return msg, seg
}

func readRoot(data []byte) (capnp.Struct, error) {
	msg, err := capnp.Unmarshal(data)
	if err != nil {
		return capnp.Struct{}, errors.Wrap(err, "could not unmarshal message")
	}

	// allow us to read as much as we want
	msg.ResetReadLimit(m.MaxUint64)

	root, err := msg.Root()
	if err != nil {
		return capnp.Struct{}, errors.Wrap(err, "could not read message root")
	}
	return root.Struct(), nil
}

func EncodeQuery(q Query) ([]byte, error) {
	msg, seg := newMessage()
	s, err := capnp.NewRootStruct(seg, querySize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create query root")
	}
	s.SetUint64(0, q.ID)
	setPoint(s, 8, q.Point)
	return msg.Marshal()
}

func DecodeQuery(data []byte) (Query, error) {
	s, err := readRoot(data)
	if err != nil {
		return Query{}, err
	}
	return Query{ID: s.Uint64(0), Point: pointAt(s, 8)}, nil
}

func EncodeResult(r Result) ([]byte, error) {
	msg, seg := newMessage()
	s, err := capnp.NewRootStruct(seg, resultSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create result root")
	}
	s.SetUint64(0, r.ID)
	setFloat64(s, 8, r.Result.Distance)
	if r.OK() {
		s.SetUint64(16, 1)
	}
	setPoint(s, 24, r.Result.Query)

	projections := r.Result.Projections
	list, err := capnp.NewCompositeList(seg, projectionSize, int32(len(projections)))
	if err != nil {
		return nil, errors.Wrap(err, "could not create projections list")
	}
	for i, p := range projections {
		ps := list.Struct(i)
		ps.SetUint64(0, uint64(p.Edge))
		setFloat64(ps, 8, p.Param)
		setPoint(ps, 16, p.Point)
		setFloat64(ps, 40, p.Distance)
	}
	if err := s.SetPtr(0, list.ToPtr()); err != nil {
		return nil, errors.Wrap(err, "could not set projections")
	}

	if !r.OK() {
		if err := s.SetText(1, r.Err); err != nil {
			return nil, errors.Wrap(err, "could not set error text")
		}
	}
	return msg.Marshal()
}

func DecodeResult(data []byte) (Result, error) {
	s, err := readRoot(data)
	if err != nil {
		return Result{}, err
	}
	res := Result{ID: s.Uint64(0)}
	res.Result.Query = pointAt(s, 24)
	res.Result.Distance = float64At(s, 8)

	if s.Uint64(16) == 0 {
		p, err := s.Ptr(1)
		if err != nil {
			return Result{}, errors.Wrap(err, "could not read error text")
		}
		res.Err = p.Text()
		if res.Err == "" {
			res.Err = "unknown error"
		}
	}

	p, err := s.Ptr(0)
	if err != nil {
		return Result{}, errors.Wrap(err, "could not read projections")
	}
	list := p.List()
	res.Result.Projections = make([]pm.Projection, list.Len())
	for i := range list.Len() {
		ps := list.Struct(i)
		res.Result.Projections[i] = pm.Projection{
			Edge:     int(ps.Uint64(0)),
			Param:    float64At(ps, 8),
			Point:    pointAt(ps, 16),
			Distance: float64At(ps, 40),
		}
	}
	return res, nil
}
