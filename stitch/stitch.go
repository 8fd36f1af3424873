/*
Package stitch orders several sampled contours into a single traversal.

Drawings usually consist of more than one connected outline, but an
epicycle chain can trace only one. Stitch concatenates all contours,
choosing the order and orientation of each by a greedy nearest-endpoint
heuristic: starting at the first point of the first contour, it repeatedly
appends the unused contour with the start or end point nearest to the
current position, reversing it if its end is the nearer one.

This is not a solution to the travelling salesman problem, and total jump
distance is not guaranteed to be minimal. It is cheap, though: O(C²)
endpoint comparisons for C contours, independent of the number of points.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package stitch

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycles.stitch'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.stitch")
}

// Step records where a contour went in a traversal.
type Step struct {
	Contour  int     // index of the input contour
	Reversed bool    // appended in reverse orientation?
	Offset   int     // index of the contour's first point within the traversal
	Jump     float64 // distance from the previous position to the contour's new start; NaN if undefined
}

// Stitch concatenates all contours into one traversal. Every input point
// appears exactly once; every contour appears as one contiguous block, in
// original or reversed orientation. A single contour is returned unchanged.
func Stitch(contours []epicycles.Contour) (epicycles.Traversal, error) {
	trav, _, err := Plan(contours)
	return trav, err
}

// Plan is like Stitch, but additionally returns the order in which the
// contours were appended.
func Plan(contours []epicycles.Contour) (epicycles.Traversal, []Step, error) {
	if len(contours) == 0 {
		tracer().Errorf("no contours to stitch")
		return nil, nil, epicycles.ErrNoSegments
	}
	total := 0
	for i, c := range contours {
		if len(c) == 0 {
			return nil, nil, fmt.Errorf("contour %d: %w", i, epicycles.ErrEmptyContour)
		}
		total += len(c)
	}
	if len(contours) == 1 {
		trav := make(epicycles.Traversal, len(contours[0]))
		copy(trav, contours[0])
		return trav, []Step{{Contour: 0}}, nil
	}
	remaining := arraylist.New()
	for i := range contours {
		remaining.Add(i)
	}
	trav := make(epicycles.Traversal, 0, total)
	steps := make([]Step, 0, len(contours))
	current := contours[0].First()
	for !remaining.Empty() {
		at, reverse, dist := nearest(contours, remaining, current)
		v, _ := remaining.Get(at)
		index := v.(int)
		remaining.Remove(at)
		next := contours[index]
		if reverse {
			next = next.Reversed()
		}
		steps = append(steps, Step{Contour: index, Reversed: reverse, Offset: len(trav), Jump: dist})
		tracer().Debugf("append contour %d (reversed=%v) after jump of %.4g", index, reverse, dist)
		trav = append(trav, next...)
		current = next.Last()
	}
	tracer().Infof("stitched %d contours into %d points", len(contours), len(trav))
	return trav, steps, nil
}

// nearest finds the position within remaining of the contour with an
// endpoint closest to pos. The start point is checked before the end point
// and only a strictly smaller distance wins, so ties keep the original
// orientation and prefer earlier contours.
func nearest(contours []epicycles.Contour, remaining *arraylist.List, pos epicycles.Pair) (int, bool, float64) {
	best, reverse, bestDist := -1, false, math.Inf(1)
	it := remaining.Iterator()
	for it.Next() {
		c := contours[it.Value().(int)]
		if d := pos.Dist(c.First()); d < bestDist {
			best, reverse, bestDist = it.Index(), false, d
		}
		if d := pos.Dist(c.Last()); d < bestDist {
			best, reverse, bestDist = it.Index(), true, d
		}
	}
	if best < 0 { // only NaN coordinates left; take the next one as it is
		best, bestDist = 0, math.NaN()
	}
	return best, reverse, bestDist
}

// JumpLength is the sum of the distances bridged between contours.
// Undefined jumps (to or from NaN coordinates) are not counted.
func JumpLength(steps []Step) float64 {
	sum := 0.0
	for _, s := range steps {
		if math.IsNaN(s.Jump) {
			continue
		}
		sum += s.Jump
	}
	return sum
}
