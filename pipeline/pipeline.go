/*
Package pipeline runs all stages, from path source to animation frames.

Stage-local numerical fallbacks never interrupt a run; they are collected
as warnings in the result. Only structurally invalid input (nothing to
process) or an invalid configuration is reported as an error.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package pipeline

import (
	"context"
	"fmt"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/animation"
	"github.com/npillmayer/epicycles/fourier"
	"github.com/npillmayer/epicycles/normalize"
	"github.com/npillmayer/epicycles/sampling"
	"github.com/npillmayer/epicycles/stitch"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycles'
func tracer() tracing.Trace {
	return tracing.Select("epicycles")
}

// Stage names a pipeline stage in warnings.
type Stage string

const (
	StageSampling  Stage = "sampling"
	StageNormalize Stage = "normalize"
	StageFourier   Stage = "fourier"
)

// Warning is a non-fatal condition encountered during a run.
type Warning struct {
	Stage   Stage
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// Summary describes the outcome of a run.
type Summary struct {
	ContourCount  int     // number of sampled contours
	PointCount    int     // points in the normalized cloud, N
	EpicycleCount int     // selected terms, K
	EnergyRatio   float64 // share of energy carried by the selected terms
	FrameCount    int     // animation steps, S
}

func (s Summary) String() string {
	return fmt.Sprintf("%d epicycles (%.1f%% energy)", s.EpicycleCount, s.EnergyRatio*100)
}

// Result is the output of a complete run.
type Result struct {
	Epicycles fourier.EpicycleSet
	Pens      []epicycles.Pair
	Frames    []animation.Frame
	Summary   Summary
	Warnings  []Warning
}

// RenderTo hands the frames over to a renderer.
func (r *Result) RenderTo(ctx context.Context, renderer animation.Renderer) error {
	return renderer.Render(ctx, r.Pens, r.Frames)
}

// Analyze runs all stages up to and including epicycle selection.
func Analyze(src sampling.Source, conf epicycles.Config) (*Result, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	result := &Result{}
	contours, reports, err := sampling.SampleAll(src, conf)
	if err != nil {
		return nil, err
	}
	for i, r := range reports {
		if r.Degraded() {
			result.warn(StageSampling, "segment %d: %d samples fell back to uniform parameter spacing",
				i, len(r.Fallbacks))
		}
	}
	trav, err := stitch.Stitch(contours)
	if err != nil {
		return nil, err
	}
	cloud, nr, err := normalize.Normalize(trav, conf)
	if err != nil {
		return nil, err
	}
	if nr.Degenerate {
		result.warn(StageNormalize, "zero extent, scaling skipped")
	}
	set, sel, err := fourier.Analyze(cloud, conf)
	if err != nil {
		return nil, err
	}
	if sel.ThresholdUnreachable {
		result.warn(StageFourier, "energy threshold %g not reached before exhausting all %d terms",
			conf.EnergyThreshold, sel.N)
	}
	result.Epicycles = set
	result.Summary = Summary{
		ContourCount:  len(contours),
		PointCount:    len(cloud),
		EpicycleCount: sel.K,
		EnergyRatio:   sel.EnergyRatio,
	}
	tracer().Infof("sampled %d points, %s", len(cloud), result.Summary)
	return result, nil
}

// Run executes the complete pipeline. Options are passed on to
// animation.Precompute.
func Run(ctx context.Context, src sampling.Source, conf epicycles.Config, opts ...animation.Option) (*Result, error) {
	result, err := Analyze(src, conf)
	if err != nil {
		return nil, err
	}
	pens, frames, err := animation.Precompute(ctx, result.Epicycles, conf.AnimationSteps, opts...)
	if err != nil {
		return nil, err
	}
	result.Pens, result.Frames = pens, frames
	result.Summary.FrameCount = len(frames)
	return result, nil
}

func (r *Result) warn(stage Stage, format string, args ...any) {
	w := Warning{Stage: stage, Message: fmt.Sprintf(format, args...)}
	tracer().Infof("warning: %s", w)
	r.Warnings = append(r.Warnings, w)
}
