/*
Package animation precomputes the geometry of an epicycle animation.

For each of S discrete time steps t = s/S it evaluates the pen position
and the chain of rotating vectors which produces it. The chain is walked
in the order of the epicycle set: circle j is centered where vector j-1
ends, and the last vector ends at the pen.

Frames depend only on their own time value and the (read-only) epicycle
set, so Precompute distributes them across worker goroutines. The order of
the result is always by step.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package animation

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/fourier"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycles.animation'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.animation")
}

// Circle is the orbit of one rotating vector.
type Circle struct {
	Center epicycles.Pair
	Radius float64
}

// Vector is one link of the epicycle chain.
type Vector struct {
	Start, End epicycles.Pair
}

// Frame is the complete geometric state of the animation at one time step.
// Circles[i].Center equals Vectors[i].Start, and the last vector ends at
// Pen.
type Frame struct {
	Step    int            // index of this frame
	T       float64        // normalized time, Step/S
	Pen     epicycles.Pair // sum of all epicycle vectors
	Circles []Circle
	Vectors []Vector
}

// Pen3 returns the pen position as a 3-vector with z = 0, which is what
// many renderers expect.
func (f Frame) Pen3() [3]float64 {
	return [3]float64{f.Pen.X(), f.Pen.Y(), 0}
}

// Renderer consumes a fully computed animation. Renderers get the frames
// wholesale and must not expect any call-backs from this package.
type Renderer interface {
	Render(ctx context.Context, pens []epicycles.Pair, frames []Frame) error
}

// ComputeFrame evaluates frame step of an animation with steps frames.
func ComputeFrame(set fourier.EpicycleSet, step, steps int) Frame {
	t := float64(step) / float64(steps)
	frame := Frame{
		Step:    step,
		T:       t,
		Pen:     fourier.Evaluate(set, t),
		Circles: make([]Circle, len(set)),
		Vectors: make([]Vector, len(set)),
	}
	var z complex128
	for j, term := range set {
		next := z + term.At(t)
		frame.Circles[j] = Circle{Center: epicycles.Pair(z), Radius: term.Radius()}
		frame.Vectors[j] = Vector{Start: epicycles.Pair(z), End: epicycles.Pair(next)}
		z = next
	}
	return frame
}

// --- Precomputation --------------------------------------------------------

type options struct {
	workers int
}

// Option configures Precompute.
type Option func(*options)

// Workers sets the number of goroutines frames are distributed across.
// n ≤ 0 selects GOMAXPROCS.
func Workers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Precompute evaluates all frames of an animation of the given number of
// steps. It returns the pen positions and the frames, both ordered by step.
//
// Cancellation of ctx is honoured between frames; a cancelled run returns
// ctx's error and no frames.
func Precompute(ctx context.Context, set fourier.EpicycleSet, steps int, opts ...Option) ([]epicycles.Pair, []Frame, error) {
	if steps < 1 {
		return nil, nil, fmt.Errorf("%w: %d animation steps", epicycles.ErrInvalidConfig, steps)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, steps)
	tracer().Debugf("precomputing %d frames of %d epicycles on %d workers", steps, len(set), workers)
	frames := make([]Frame, steps)
	var wg sync.WaitGroup
	chunk := (steps + workers - 1) / workers
	for w := 0; w < workers; w++ {
		from, to := w*chunk, min((w+1)*chunk, steps)
		if from >= to {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := from; s < to; s++ {
				if ctx.Err() != nil {
					return
				}
				frames[s] = ComputeFrame(set, s, steps)
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		tracer().Infof("precomputation cancelled: %v", err)
		return nil, nil, err
	}
	pens := make([]epicycles.Pair, steps)
	for s := range frames {
		pens[s] = frames[s].Pen
	}
	tracer().Infof("precomputed %d frames", steps)
	return pens, frames, nil
}
