package epicycles

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates structurally invalid input: there is no data
	// to process. It is the only kind of error fatal to a pipeline run.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoSegments indicates a path source without any segments.
	ErrNoSegments = fmt.Errorf("%w: path source has no segments", ErrInvalidInput)
	// ErrEmptyContour indicates a segment which yielded no sampled points.
	ErrEmptyContour = fmt.Errorf("%w: segment yielded no points", ErrInvalidInput)
	// ErrInvalidConfig indicates a configuration value out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)
