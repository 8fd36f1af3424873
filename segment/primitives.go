/*
Package segment provides concrete path geometry for the sampling stage:
lines, quadratic and cubic Béziers, and paths built from them.

All types implement sampling.Segment and sampling.PartialLengther.
Evaluation and arc length of the primitives are delegated to package
honnef.co/go/curve; this package translates between its points and
epicycles.Pair.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package segment

import (
	"math"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'epicycles.segment'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.segment")
}

// Accuracy requested from curve's arc length computations.
const arclenAccuracy = 1e-9

// Primitive is a single parametrized piece of a path.
type Primitive interface {
	PointAt(t float64) epicycles.Pair
	Length() float64
	LengthBetween(t0, t1 float64) float64 // arc length from t0 to t1
	Start() epicycles.Pair
	End() epicycles.Pair
}

func toCurve(p epicycles.Pair) curve.Point {
	return curve.Pt(p.X(), p.Y())
}

func fromCurve(p curve.Point) epicycles.Pair {
	return epicycles.P(p.X, p.Y)
}

// --- Line ------------------------------------------------------------------

// Line is a straight line from P0 to P1.
type Line struct {
	P0, P1 epicycles.Pair
}

func (l Line) geom() curve.Line {
	return curve.Line{P0: toCurve(l.P0), P1: toCurve(l.P1)}
}

// PointAt evaluates the line at t.
func (l Line) PointAt(t float64) epicycles.Pair {
	return fromCurve(l.geom().Eval(t))
}

// Start returns P0.
func (l Line) Start() epicycles.Pair { return l.P0 }

// End returns P1.
func (l Line) End() epicycles.Pair { return l.P1 }

// Length of the line.
func (l Line) Length() float64 {
	return l.geom().Length()
}

// LengthBetween is exact for lines.
func (l Line) LengthBetween(t0, t1 float64) float64 {
	return l.Length() * (t1 - t0)
}

// InvertArclen is exact for lines and never fails.
func (l Line) InvertArclen(s float64, _ float64, _ int) (float64, error) {
	if l.Length() <= 0 || s <= 0 {
		return 0, nil
	}
	return math.Min(l.geom().SolveForArclen(s, arclenAccuracy), 1), nil
}

// --- Quadratic Bézier ------------------------------------------------------

// QuadBez is a quadratic Bézier curve.
type QuadBez struct {
	P0, P1, P2 epicycles.Pair
}

func (q QuadBez) geom() curve.QuadBez {
	return curve.QuadBez{P0: toCurve(q.P0), P1: toCurve(q.P1), P2: toCurve(q.P2)}
}

// PointAt evaluates the curve at t.
func (q QuadBez) PointAt(t float64) epicycles.Pair {
	return fromCurve(q.geom().Eval(t))
}

// Start returns P0.
func (q QuadBez) Start() epicycles.Pair { return q.P0 }

// End returns P2.
func (q QuadBez) End() epicycles.Pair { return q.P2 }

// Length of the curve.
func (q QuadBez) Length() float64 {
	return arclenQuad(q.geom())
}

// LengthBetween measures the curve between t0 and t1.
func (q QuadBez) LengthBetween(t0, t1 float64) float64 {
	if t1 <= t0 {
		return 0
	}
	return arclenQuad(q.geom().Subsegment(t0, t1))
}

// curve's closed form is undefined for a quadratic collapsed to a point.
func arclenQuad(q curve.QuadBez) float64 {
	if q.P0 == q.P1 && q.P1 == q.P2 {
		return 0
	}
	return q.Arclen(arclenAccuracy)
}

// --- Cubic Bézier ----------------------------------------------------------

// CubicBez is a cubic Bézier curve.
type CubicBez struct {
	P0, P1, P2, P3 epicycles.Pair
}

func (c CubicBez) geom() curve.CubicBez {
	return curve.CubicBez{P0: toCurve(c.P0), P1: toCurve(c.P1), P2: toCurve(c.P2), P3: toCurve(c.P3)}
}

// PointAt evaluates the curve at t.
func (c CubicBez) PointAt(t float64) epicycles.Pair {
	return fromCurve(c.geom().Eval(t))
}

// Start returns P0.
func (c CubicBez) Start() epicycles.Pair { return c.P0 }

// End returns P3.
func (c CubicBez) End() epicycles.Pair { return c.P3 }

// Length of the curve.
func (c CubicBez) Length() float64 {
	return c.geom().Arclen(arclenAccuracy)
}

// LengthBetween measures the curve between t0 and t1.
func (c CubicBez) LengthBetween(t0, t1 float64) float64 {
	if t1 <= t0 {
		return 0
	}
	return c.geom().Subsegment(t0, t1).Arclen(arclenAccuracy)
}
