package segment

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/sampling"
)

// Path is an ordered run of connected primitives, i.e. one sub-path of a
// drawing. To construct a path, start with Nullpath(), which creates an
// empty path, and then extend it:
//
//	path := Nullpath().MoveTo(P(0,0)).LineTo(P(3,0)).
//		CubicTo(P(4,0), P(4,2), P(3,2)).Close()
//
// The path's parameter T ∈ [0,1] is split evenly among its primitives:
// primitive k of n covers [k/n, (k+1)/n]. This is not proportional to arc
// length, which is why the sampling stage inverts arc length.
type Path struct {
	start   epicycles.Pair
	current epicycles.Pair
	started bool
	pieces  []Primitive
	closed  bool
}

// Nullpath creates an empty path, to be extended by subsequent builder
// calls.
func Nullpath() *Path {
	return &Path{}
}

// MoveTo sets the start point. Part of builder functionality.
func (path *Path) MoveTo(p epicycles.Pair) *Path {
	if len(path.pieces) > 0 {
		panic("cannot move pen of a non-empty path; start a new path instead")
	}
	path.start, path.current, path.started = p, p, true
	return path
}

// LineTo appends a straight line. Part of builder functionality.
func (path *Path) LineTo(p epicycles.Pair) *Path {
	path.mustBeStarted("line")
	return path.add(Line{P0: path.current, P1: p})
}

// QuadTo appends a quadratic Bézier with control point c.
// Part of builder functionality.
func (path *Path) QuadTo(c, p epicycles.Pair) *Path {
	path.mustBeStarted("curve")
	return path.add(QuadBez{P0: path.current, P1: c, P2: p})
}

// CubicTo appends a cubic Bézier with control points c1 and c2.
// Part of builder functionality.
func (path *Path) CubicTo(c1, c2, p epicycles.Pair) *Path {
	path.mustBeStarted("curve")
	return path.add(CubicBez{P0: path.current, P1: c1, P2: c2, P3: p})
}

// Append adds an arbitrary primitive. Its start point should coincide with
// the current end of the path. Part of builder functionality.
func (path *Path) Append(pr Primitive) *Path {
	if !path.started {
		path.MoveTo(pr.Start())
	} else if !pr.Start().Equal(path.current) {
		tracer().Debugf("appending disconnected primitive at %s, path ends at %s",
			pr.Start(), path.current)
	}
	return path.add(pr)
}

// Close connects the current point to the start point with a straight line,
// if necessary. Part of builder functionality.
func (path *Path) Close() *Path {
	path.mustBeStarted("closing line")
	if !path.current.Equal(path.start) {
		path.add(Line{P0: path.current, P1: path.start})
	}
	path.closed = true
	return path
}

// End an open path. Part of builder functionality.
func (path *Path) End() *Path {
	return path
}

func (path *Path) mustBeStarted(what string) {
	if !path.started {
		panic(fmt.Sprintf("cannot add %s to empty path", what))
	}
}

func (path *Path) add(pr Primitive) *Path {
	path.pieces = append(path.pieces, pr)
	path.current = pr.End()
	return path
}

// IsClosed is a predicate: has this path been closed?
func (path *Path) IsClosed() bool {
	return path.closed
}

// N returns the number of primitives of this path.
func (path *Path) N() int {
	return len(path.pieces)
}

// Piece returns primitive i.
func (path *Path) Piece(i int) Primitive {
	return path.pieces[i]
}

// Length is the sum of the lengths of all primitives.
func (path *Path) Length() float64 {
	return path.LengthBetween(0, 1)
}

// PointAt evaluates the path at T ∈ [0,1]. An empty path evaluates to its
// start point everywhere.
func (path *Path) PointAt(T float64) epicycles.Pair {
	n := len(path.pieces)
	if n == 0 {
		return path.start
	}
	k, t := path.locate(T)
	return path.pieces[k].PointAt(t)
}

// LengthBetween measures the path between global parameters T0 and T1.
func (path *Path) LengthBetween(T0, T1 float64) float64 {
	n := len(path.pieces)
	if n == 0 || T1 <= T0 {
		return 0
	}
	k0, t0 := path.locate(T0)
	k1, t1 := path.locate(T1)
	if k0 == k1 {
		return lengthOf(path.pieces[k0], t0, t1)
	}
	length := lengthOf(path.pieces[k0], t0, 1)
	for k := k0 + 1; k < k1; k++ {
		length += lengthOf(path.pieces[k], 0, 1)
	}
	return length + lengthOf(path.pieces[k1], 0, t1)
}

// locate maps a global parameter to a primitive index and a local parameter.
func (path *Path) locate(T float64) (int, float64) {
	n := len(path.pieces)
	T = math.Max(0, math.Min(1, T))
	k := int(T * float64(n))
	if k >= n {
		k = n - 1
	}
	return k, T*float64(n) - float64(k)
}

func lengthOf(pr Primitive, t0, t1 float64) float64 {
	if t1 <= t0 {
		return 0
	}
	return pr.LengthBetween(t0, t1)
}

// String returns a path as a (debugging) string.
func (path *Path) String() string {
	var b strings.Builder
	b.WriteString(path.start.String())
	for _, pr := range path.pieces {
		switch pr.(type) {
		case Line:
			b.WriteString(" -- ")
		default:
			b.WriteString(" .. ")
		}
		b.WriteString(pr.End().String())
	}
	if path.closed {
		b.WriteString(" -- cycle")
	}
	return b.String()
}

// --- Shapes ----------------------------------------------------------------

// Polygon creates a closed path of straight lines through the given points.
func Polygon(pts ...epicycles.Pair) *Path {
	if len(pts) == 0 {
		return Nullpath()
	}
	path := Nullpath().MoveTo(pts[0])
	for _, pt := range pts[1:] {
		path.LineTo(pt)
	}
	return path.Close()
}

// kappa places cubic control points to approximate a quarter circle.
const kappa = 0.5522847498

// Circle creates a closed path approximating a circle around center with
// radius r by four cubic Béziers, starting at the rightmost point and
// running counter-clockwise (in a y-up system).
func Circle(center epicycles.Pair, r float64) *Path {
	k := r * kappa
	p := func(x, y float64) epicycles.Pair { return epicycles.P(x, y).Shifted(center) }
	return Nullpath().MoveTo(p(r, 0)).
		CubicTo(p(r, k), p(k, r), p(0, r)).
		CubicTo(p(-k, r), p(-r, k), p(-r, 0)).
		CubicTo(p(-r, -k), p(-k, -r), p(0, -r)).
		CubicTo(p(k, -r), p(r, -k), p(r, 0)).
		Close()
}

// Source bundles paths into a path source for the sampling stage.
func Source(paths ...*Path) sampling.Source {
	src := make(sampling.Source, len(paths))
	for i, path := range paths {
		src[i] = path
	}
	return src
}

// Interface guards
var (
	_ sampling.Segment         = (*Path)(nil)
	_ sampling.PartialLengther = (*Path)(nil)
	_ Primitive                = Line{}
	_ sampling.ArclenInverter  = Line{}
	_ Primitive                = QuadBez{}
	_ Primitive                = CubicBez{}
	_ sampling.Segment         = CubicBez{}
	_ sampling.PartialLengther = CubicBez{}
)
