/*
Package normalize brings a traversal into the fixed coordinate frame the
Fourier stage works in: closed, centered at the origin, and scaled so that
its largest absolute coordinate equals a configured extent.

Centering and scaling are combined into a single affine transform, which
is applied to every point in one pass.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package normalize

import (
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycles.normalize'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.normalize")
}

// Report describes what Normalize did.
type Report struct {
	Closed     bool           // was the first point appended to close the loop?
	Centroid   epicycles.Pair // mean of the closed traversal, before centering
	Extent     float64        // max absolute coordinate after centering, before scaling
	Scale      float64        // factor applied; 1 if degenerate
	Degenerate bool           // zero extent, scaling skipped
}

// Normalize closes, centers and scales a traversal. Each step is a pure
// transform; the input is not modified.
//
// If the extent of the centered points is zero (all points coincide), the
// scaling step is skipped and Report.Degenerate is set. This is not an
// error.
func Normalize(trav epicycles.Traversal, conf epicycles.Config) (epicycles.Cloud, Report, error) {
	var report Report
	if len(trav) == 0 {
		tracer().Errorf("cannot normalize an empty traversal")
		return nil, report, fmt.Errorf("%w: empty traversal", epicycles.ErrInvalidInput)
	}
	cloud := Close(trav, conf.CloseTolerance)
	report.Closed = len(cloud) > len(trav)
	report.Centroid = epicycles.Centroid(cloud)
	report.Extent = extentAbout(cloud, report.Centroid)
	report.Scale = 1
	norm := epicycles.Translation(-report.Centroid)
	if report.Extent > 0 {
		report.Scale = conf.ScaleFactor / report.Extent
		norm = norm.Combine(epicycles.Scaling(report.Scale))
	} else {
		report.Degenerate = true
		tracer().Infof("traversal has zero extent, leaving it unscaled")
	}
	tracer().Debugf("normalizing transform %s", norm)
	for i, pt := range cloud {
		cloud[i] = norm.Transform(pt)
	}
	tracer().Infof("normalized %d points: centroid %s, extent %.4g, scale %.4g",
		len(cloud), report.Centroid, report.Extent, report.Scale)
	return cloud, report, nil
}

// Close returns a copy of trav with its first point appended, if the
// distance between first and last point exceeds tolerance.
func Close(trav epicycles.Traversal, tolerance float64) epicycles.Cloud {
	cloud := make(epicycles.Cloud, len(trav), len(trav)+1)
	copy(cloud, trav)
	if len(trav) > 0 && trav[0].Dist(trav[len(trav)-1]) > tolerance {
		cloud = append(cloud, trav[0])
	}
	return cloud
}

// MaxExtent is the maximum absolute coordinate component of a set of points,
// i.e. the half-size of the smallest origin-centered square containing
// them all.
func MaxExtent(pts []epicycles.Pair) float64 {
	return extentAbout(pts, epicycles.Origin)
}

// extentAbout is the maximum absolute coordinate component of the points,
// measured relative to c.
func extentAbout(pts []epicycles.Pair, c epicycles.Pair) float64 {
	if len(pts) == 0 {
		return 0
	}
	bbox := asPolyclip(pts).BoundingBox()
	return math.Max(
		math.Max(math.Abs(bbox.Min.X-c.X()), math.Abs(bbox.Max.X-c.X())),
		math.Max(math.Abs(bbox.Min.Y-c.Y()), math.Abs(bbox.Max.Y-c.Y())))
}

func asPolyclip(pts []epicycles.Pair) polyclip.Contour {
	c := make(polyclip.Contour, len(pts))
	for i, pt := range pts {
		c[i] = polyclip.Point{X: pt.X(), Y: pt.Y()}
	}
	return c
}
