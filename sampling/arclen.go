package sampling

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// chordPieces is the resolution of the chord-sum approximation used for
// segments which cannot measure partial lengths themselves.
const chordPieces = 256

// InvertArclen solves for the parameter t at which the arc length of seg,
// measured from t=0, equals s.
//
// The root is searched for in [0,1] by the ITP method of package curve.
// Partial lengths are measured incrementally between consecutive
// iterates, which is cheaper than re-measuring from t=0 every time.
// The search stops as soon as an iterate is within tolerance of s, or when
// the bracket has shrunk to the parameter resolution corresponding to
// tolerance.
//
// If seg implements PartialLengther, its partial lengths are used.
// Otherwise they are approximated by summing chords, scaled to agree with
// seg.Length().
//
// InvertArclen returns ErrNoConvergence (together with its best estimate)
// if maxIter evaluations did not suffice.
func InvertArclen(seg Segment, s float64, tolerance float64, maxIter int) (float64, error) {
	total := seg.Length()
	if math.IsNaN(total) || math.IsInf(total, 0) || math.IsNaN(s) {
		return 0, fmt.Errorf("%w: length %g, target %g", ErrNoConvergence, total, s)
	}
	if s <= 0 {
		return 0, nil
	}
	if s >= total {
		return 1, nil
	}
	between := partialLengths(seg, total)
	tLast, arclenLast := 0.0, 0.0
	calls, exhausted := 0, false
	f := func(t float64) float64 {
		if t > tLast {
			arclenLast += between(tLast, t)
		} else {
			arclenLast -= between(t, tLast)
		}
		tLast = t
		calls++
		y := arclenLast - s
		if math.Abs(y) <= tolerance {
			return 0 // close enough, make the solver accept t
		}
		if calls >= maxIter {
			exhausted = true
			return 0
		}
		return y
	}
	// Parameter resolution well below the tolerance, so that the residual
	// test usually ends the search, not the width of the bracket. The floor
	// keeps the solver's iteration bound 2^n within a uint64.
	epsilon := max(tolerance/total/1024, 1e-15)
	t := curve.SolveITP(f, 0, 1, epsilon, 1, 0.2, -s, total-s)
	if exhausted {
		return t, fmt.Errorf("%w: target %g after %d iterations", ErrNoConvergence, s, maxIter)
	}
	return t, nil
}

func partialLengths(seg Segment, total float64) func(t0, t1 float64) float64 {
	if pl, ok := seg.(PartialLengther); ok {
		return pl.LengthBetween
	}
	chords := chordLength(seg, 0, 1)
	scale := 1.0
	if chords > 0 {
		scale = total / chords
	}
	return func(t0, t1 float64) float64 {
		return chordLength(seg, t0, t1) * scale
	}
}

// chordLength approximates the arc length between t0 and t1 by a polyline
// with a resolution proportional to the size of the parameter range.
func chordLength(seg Segment, t0, t1 float64) float64 {
	n := int(math.Ceil((t1 - t0) * chordPieces))
	if n < 1 {
		n = 1
	}
	dt := (t1 - t0) / float64(n)
	length := 0.0
	prev := seg.PointAt(t0)
	for i := 1; i <= n; i++ {
		pt := seg.PointAt(t0 + float64(i)*dt)
		length += prev.Dist(pt)
		prev = pt
	}
	return length
}
