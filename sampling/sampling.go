/*
Package sampling resamples path segments into points spaced uniformly by
arc length.

A segment is anything that knows its total length and can be evaluated
at a parameter t ∈ [0,1]. Parameter space is usually not proportional to
arc length (think of a cubic Bézier with clustered control points), so
sampling at uniform t would crowd points where the curve moves slowly.
Sample instead inverts arc length to t for every sample.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package sampling

import (
	"errors"
	"fmt"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycles.sampling'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.sampling")
}

// Segment is a parametrized curve of known length.
type Segment interface {
	Length() float64                  // total arc length L
	PointAt(t float64) epicycles.Pair // t ∈ [0,1]
}

// ArclenInverter may be implemented by segments which know how to find the
// parameter for a given arc length better than the generic solver does.
type ArclenInverter interface {
	// InvertArclen returns t such that the arc length from 0 to t is s,
	// within tolerance, using at most maxIter iterations.
	InvertArclen(s float64, tolerance float64, maxIter int) (float64, error)
}

// PartialLengther may be implemented by segments which are able to measure
// the arc length of a sub-range of their parameter space.
type PartialLengther interface {
	LengthBetween(t0, t1 float64) float64
}

// Source is an ordered collection of path segments, one per contour.
type Source []Segment

// Report collects non-fatal conditions encountered while sampling
// one segment.
type Report struct {
	Fallbacks []int // samples for which arc length inversion did not converge
}

// Degraded is a predicate: did any sample fall back to uniform parameter
// spacing?
func (r Report) Degraded() bool {
	return len(r.Fallbacks) > 0
}

// Sample produces conf.SamplesPerPath points on seg, spaced uniformly by
// arc length. Sample i is taken at arc length (i/M)·L.
//
// If arc length inversion fails for a sample, that single sample is taken
// at parameter i/M instead. This is reported in the returned Report, never
// as an error. An error is returned only if there is nothing to sample.
func Sample(seg Segment, conf epicycles.Config) (epicycles.Contour, Report, error) {
	var report Report
	if seg == nil {
		return nil, report, fmt.Errorf("%w: segment is nil", epicycles.ErrInvalidInput)
	}
	m := conf.SamplesPerPath
	if m < 1 {
		return nil, report, fmt.Errorf("%w: %d samples requested", epicycles.ErrEmptyContour, m)
	}
	invert := inverterFor(seg)
	length := seg.Length()
	contour := make(epicycles.Contour, m)
	for i := 0; i < m; i++ {
		s := float64(i) / float64(m) * length
		t, err := invert(s, conf.ArclenTolerance, conf.ArclenMaxIterations)
		if err != nil {
			tracer().Debugf("sample %d: %v, using uniform parameter", i, err)
			t = float64(i) / float64(m)
			report.Fallbacks = append(report.Fallbacks, i)
		}
		contour[i] = seg.PointAt(t)
	}
	if conf.FlipY {
		contour = contour.Transformed(epicycles.FlipY())
	}
	if report.Degraded() {
		tracer().Infof("%d of %d samples fell back to uniform parameter spacing",
			len(report.Fallbacks), m)
	}
	tracer().Debugf("sampled segment of length %.4g: %s", length, epicycles.AsString(contour))
	return contour, report, nil
}

// SampleAll samples every segment of a source, in order.
func SampleAll(src Source, conf epicycles.Config) ([]epicycles.Contour, []Report, error) {
	if len(src) == 0 {
		tracer().Errorf("path source has no segments")
		return nil, nil, epicycles.ErrNoSegments
	}
	contours := make([]epicycles.Contour, 0, len(src))
	reports := make([]Report, 0, len(src))
	for i, seg := range src {
		c, r, err := Sample(seg, conf)
		if err != nil {
			tracer().Errorf("cannot sample segment %d: %v", i, err)
			return nil, nil, fmt.Errorf("segment %d: %w", i, err)
		}
		contours = append(contours, c)
		reports = append(reports, r)
	}
	tracer().Infof("sampled %d segments", len(src))
	return contours, reports, nil
}

// MustSample is a compatibility helper which panics on invalid input.
func MustSample(seg Segment, conf epicycles.Config) epicycles.Contour {
	c, _, err := Sample(seg, conf)
	if err != nil {
		panic(err)
	}
	return c
}

type inverter func(s float64, tolerance float64, maxIter int) (float64, error)

func inverterFor(seg Segment) inverter {
	if inv, ok := seg.(ArclenInverter); ok {
		return inv.InvertArclen
	}
	return func(s float64, tolerance float64, maxIter int) (float64, error) {
		return InvertArclen(seg, s, tolerance, maxIter)
	}
}

// ErrNoConvergence is returned by InvertArclen if the iteration cap is hit
// before the solution is within tolerance.
var ErrNoConvergence = errors.New("arc length inversion did not converge")
