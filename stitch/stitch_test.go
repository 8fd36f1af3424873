package stitch

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var P = epicycles.P

func TestSingleContourIsIdentity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := epicycles.Contour{P(3, 3), P(0, 0), P(1, 2)}
	trav, err := Stitch([]epicycles.Contour{c})
	require.NoError(t, err)
	assert.Equal(t, epicycles.Traversal(c), trav)
	trav[0] = P(9, 9)
	assert.Equal(t, P(3, 3), c[0], "traversal must not alias the input contour")
}

func TestTwoDisjointContours(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// from (1,0), (5,5) is at distance √41 and (6,5) at √50
	a := epicycles.Contour{P(0, 0), P(1, 0)}
	b := epicycles.Contour{P(5, 5), P(6, 5)}
	trav, steps, err := Plan([]epicycles.Contour{a, b})
	require.NoError(t, err)
	assert.Equal(t, epicycles.Traversal{P(0, 0), P(1, 0), P(5, 5), P(6, 5)}, trav)
	require.Len(t, steps, 2)
	assert.False(t, steps[1].Reversed)
	assert.Equal(t, 2, steps[1].Offset)
}

func TestNearerEndReverses(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := epicycles.Contour{P(0, 0), P(1, 0)}
	b := epicycles.Contour{P(5, 0), P(2, 0)}
	trav, err := Stitch([]epicycles.Contour{a, b})
	require.NoError(t, err)
	assert.Equal(t, epicycles.Traversal{P(0, 0), P(1, 0), P(2, 0), P(5, 0)}, trav)
}

func TestGreedyOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	contours := []epicycles.Contour{
		{P(0, 0), P(1, 0)},
		{P(10, 0), P(11, 0)},
		{P(3, 0), P(4, 0)},
		{P(6, 0), P(5, 0)},
	}
	_, steps, err := Plan(contours)
	require.NoError(t, err)
	order := make([]int, len(steps))
	for i, s := range steps {
		order[i] = s.Contour
	}
	assert.Equal(t, []int{0, 2, 3, 1}, order)
	assert.True(t, steps[2].Reversed, "(5,0) is nearer to (4,0) than (6,0)")
	assert.InDelta(t, 2+1+4, JumpLength(steps), 1e-12)
}

func TestTiesKeepOrientationAndOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	contours := []epicycles.Contour{
		{P(0, 0), P(1, 0)},
		{P(2, 0), P(3, 0)}, // start at distance 1
		{P(3, 1), P(1, 1)}, // end at distance 1
	}
	_, steps, err := Plan(contours)
	require.NoError(t, err)
	assert.Equal(t, 1, steps[1].Contour)
	assert.False(t, steps[1].Reversed)
}

func TestStitchCompleteness(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(4711))
	contours := make([]epicycles.Contour, 7)
	total := 0
	for i := range contours {
		n := 1 + rnd.Intn(20)
		c := make(epicycles.Contour, n)
		for j := range c {
			c[j] = P(rnd.Float64()*100, rnd.Float64()*100)
		}
		contours[i] = c
		total += n
	}
	trav, steps, err := Plan(contours)
	require.NoError(t, err)
	assert.Len(t, trav, total)
	seen := make(map[int]bool)
	for _, s := range steps {
		assert.False(t, seen[s.Contour], "contour %d used twice", s.Contour)
		seen[s.Contour] = true
		want := contours[s.Contour]
		if s.Reversed {
			want = want.Reversed()
		}
		block := epicycles.Contour(trav[s.Offset : s.Offset+len(want)])
		assert.Equal(t, want, block, "contour %d", s.Contour)
	}
	assert.Len(t, seen, len(contours))
}

func TestStitchRejectsEmptyInput(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Stitch(nil)
	assert.True(t, errors.Is(err, epicycles.ErrInvalidInput))
	_, err = Stitch([]epicycles.Contour{{P(0, 0)}, {}})
	assert.True(t, errors.Is(err, epicycles.ErrEmptyContour))
}

func TestUndefinedJumpIsNotCounted(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	nan := math.NaN()
	contours := []epicycles.Contour{
		{P(0, 0), P(1, 0)},
		{P(nan, 0), P(nan, 1)},
	}
	trav, steps, err := Plan(contours)
	require.NoError(t, err)
	assert.Len(t, trav, 4)
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[1].Contour)
	assert.True(t, math.IsNaN(steps[1].Jump))
	assert.False(t, math.IsInf(JumpLength(steps), 0))
	assert.Equal(t, 0.0, JumpLength(steps))
}
