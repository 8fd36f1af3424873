package sampling

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parabolic runs along the x-axis from 0 to 1, but with x = t², i.e. its
// parameter is not proportional to arc length.
type parabolic struct{}

func (parabolic) Length() float64                      { return 1 }
func (parabolic) PointAt(t float64) epicycles.Pair     { return epicycles.P(t*t, 0) }
func (parabolic) LengthBetween(t0, t1 float64) float64 { return t1*t1 - t0*t0 }

// chordsOnly is a unit circle which cannot measure partial lengths.
type chordsOnly struct{}

func (chordsOnly) Length() float64 { return 2 * math.Pi }
func (chordsOnly) PointAt(t float64) epicycles.Pair {
	return epicycles.P(math.Cos(2*math.Pi*t), math.Sin(2*math.Pi*t))
}

// failing refuses to invert every second arc length.
type failing struct {
	parabolic
}

func (failing) InvertArclen(s float64, _ float64, _ int) (float64, error) {
	if int(math.Round(s*10))%2 == 1 {
		return 0, ErrNoConvergence
	}
	return math.Sqrt(s), nil
}

// counting is a parabolic which counts the partial lengths measured.
type counting struct {
	parabolic
	calls *int
}

func (c counting) LengthBetween(t0, t1 float64) float64 {
	*c.calls++
	return c.parabolic.LengthBetween(t0, t1)
}

func testConfig(samples int) epicycles.Config {
	conf := epicycles.DefaultConfig()
	conf.SamplesPerPath = samples
	conf.FlipY = false
	return conf
}

func TestInvertArclenExactPartials(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tt, err := InvertArclen(parabolic{}, 0.25, 1e-9, 50)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, tt, 1e-6)
	tt, err = InvertArclen(parabolic{}, 0, 1e-9, 50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tt)
	tt, err = InvertArclen(parabolic{}, 2, 1e-9, 50)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tt)
}

func TestInvertArclenChords(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tt, err := InvertArclen(chordsOnly{}, math.Pi/2, 1e-4, 50)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, tt, 1e-3)
}

func TestInvertArclenIterationCap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := InvertArclen(parabolic{}, 0.3, 1e-12, 1)
	assert.True(t, errors.Is(err, ErrNoConvergence))
}

func TestInvertArclenRespectsBudget(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	calls := 0
	tt, err := InvertArclen(counting{calls: &calls}, 0.49, 1e-9, 50)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, tt, 1e-6)
	assert.LessOrEqual(t, calls, 50)
	calls = 0
	_, err = InvertArclen(counting{calls: &calls}, 0.49, 1e-9, 3)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	assert.Equal(t, 3, calls, "solver must stop when the budget is used up")
}

func TestSampleUniformByArclen(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	contour, report, err := Sample(parabolic{}, testConfig(10))
	require.NoError(t, err)
	require.Len(t, contour, 10)
	assert.False(t, report.Degraded())
	for i, pt := range contour {
		assert.InDelta(t, float64(i)/10, pt.X(), 1e-6, "sample %d", i)
	}
}

func TestSampleFallsBackPerSample(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	contour, report, err := Sample(failing{}, testConfig(10))
	require.NoError(t, err)
	require.Len(t, contour, 10)
	assert.Equal(t, []int{1, 3, 5, 7, 9}, report.Fallbacks)
	// fallback samples use uniform parameter spacing, t = i/M
	assert.InDelta(t, 0.01, contour[1].X(), 1e-9)
	assert.InDelta(t, 0.2, contour[2].X(), 1e-9)
}

func TestSampleFlipsY(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf := testConfig(4)
	conf.ArclenTolerance = 1e-4
	conf.FlipY = true
	contour, _, err := Sample(chordsOnly{}, conf)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, contour[1].Y(), 1e-3)
}

func TestSampleRejectsEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, _, err := Sample(parabolic{}, testConfig(0))
	assert.True(t, errors.Is(err, epicycles.ErrEmptyContour))
	assert.True(t, errors.Is(err, epicycles.ErrInvalidInput))
	_, _, err = Sample(nil, testConfig(10))
	assert.True(t, errors.Is(err, epicycles.ErrInvalidInput))
	assert.Panics(t, func() { MustSample(nil, testConfig(10)) })
}

func TestSampleAll(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, _, err := SampleAll(nil, testConfig(10))
	assert.True(t, errors.Is(err, epicycles.ErrNoSegments))
	contours, reports, err := SampleAll(Source{parabolic{}, failing{}}, testConfig(10))
	require.NoError(t, err)
	assert.Len(t, contours, 2)
	assert.Len(t, reports, 2)
	assert.False(t, reports[0].Degraded())
	assert.True(t, reports[1].Degraded())
	_, _, err = SampleAll(Source{parabolic{}, nil}, testConfig(5))
	assert.ErrorContains(t, err, "segment 1")
}
