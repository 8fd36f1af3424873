package epicycles

import "strings"

// === Point Sequences =======================================================

// Contour is an ordered sequence of points sampled from one path segment.
// A contour may be open or (approximately) closed.
type Contour []Pair

// Traversal is the single ordered point sequence produced by stitching
// all contours of a path source together.
type Traversal []Pair

// Cloud is a traversal which has been closed, centered and scaled.
// Its centroid is (0,0) within floating point tolerance.
type Cloud []Pair

// Reversed returns a copy of c with points in reverse order.
func (c Contour) Reversed() Contour {
	r := make(Contour, len(c))
	for i, pt := range c {
		r[len(c)-1-i] = pt
	}
	return r
}

// First returns the first point of c. c must not be empty.
func (c Contour) First() Pair {
	return c[0]
}

// Last returns the last point of c. c must not be empty.
func (c Contour) Last() Pair {
	return c[len(c)-1]
}

// Transformed applies an affine transform to every point, returning a new
// contour.
func (c Contour) Transformed(m AT) Contour {
	r := make(Contour, len(c))
	for i, pt := range c {
		r[i] = m.Transform(pt)
	}
	return r
}

// Centroid returns the arithmetic mean of a non-empty point sequence.
func Centroid(pts []Pair) Pair {
	if len(pts) == 0 {
		return Origin
	}
	var sum complex128
	for _, pt := range pts {
		sum += pt.C()
	}
	return Pair(sum / complex(float64(len(pts)), 0))
}

// AsString returns a point sequence as a (debugging) string, eliding the
// middle of long sequences.
func AsString(pts []Pair) string {
	const show = 4
	var b strings.Builder
	b.WriteString("[")
	for i, pt := range pts {
		if len(pts) > 2*show && i == show {
			b.WriteString(" ..")
		}
		if len(pts) > 2*show && i >= show && i < len(pts)-show {
			continue
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(pt.String())
	}
	b.WriteString("]")
	return b.String()
}
