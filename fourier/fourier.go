/*
Package fourier decomposes a closed point cloud into rotating vectors.

A cloud of N points z_0 … z_{N-1}, read as complex numbers, is transformed
by a discrete Fourier transform, normalized by 1/N:

	c_f = 1/N · Σ_j z_j · exp(-2πi·f·j/N)

Each coefficient c_f describes a vector of length |c_f| rotating f times
per period (clockwise for negative f). Summing all N of them at time
t = j/N reproduces z_j exactly. Most of a drawing's energy usually sits
in comparatively few terms, so Select keeps only the strongest ones needed
to reach a configured fraction of the total energy.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package fourier

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
	dsp "gonum.org/v1/gonum/dsp/fourier"
)

// tracer writes to trace with key 'epicycles.fourier'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.fourier")
}

// Term is a single Fourier term: a coefficient at an integer frequency.
type Term struct {
	Frequency   int        // signed DFT bin index
	Coefficient complex128 // normalized by 1/N
}

// Radius is the length of the term's rotating vector.
func (t Term) Radius() float64 {
	return cmplx.Abs(t.Coefficient)
}

// Energy is the squared magnitude of the coefficient.
func (t Term) Energy() float64 {
	r := t.Radius()
	return r * r
}

// At returns the term's vector at normalized time t.
func (t Term) At(time float64) complex128 {
	return complex128(t.Coefficient * Rotor(t.Frequency, time))
}

func (t Term) String() string {
	return fmt.Sprintf("%d:%.4g", t.Frequency, t.Coefficient)
}

// Rotor is exp(2πi·f·t), the unit vector of frequency f at time t.
func Rotor(f int, t float64) complex128 {
	return cmplx.Exp(complex(0, 2*math.Pi*float64(f)*t))
}

// Evaluate sums the vectors of all terms at normalized time t, in the
// order given.
func Evaluate(terms []Term, t float64) epicycles.Pair {
	var z complex128
	for _, term := range terms {
		z += term.At(t)
	}
	return epicycles.Pair(z)
}

// BinFrequency maps DFT bin k of an N-point transform to its signed
// frequency: bins 0 … ⌊(N-1)/2⌋ are non-negative, the remaining ones
// count down from -⌊N/2⌋ to -1.
func BinFrequency(k, n int) int {
	if k <= (n-1)/2 {
		return k
	}
	return k - n
}

// === Spectrum ==============================================================

// Spectrum is the full set of N Fourier terms of a cloud.
// Coefficients are stored in a sorted map, keyed by frequency.
type Spectrum struct {
	n      int
	coeffs *treemap.Map // frequency → complex128
}

// Transform computes the spectrum of a cloud.
func Transform(cloud epicycles.Cloud) (*Spectrum, error) {
	n := len(cloud)
	if n == 0 {
		tracer().Errorf("cannot transform an empty cloud")
		return nil, fmt.Errorf("%w: empty point cloud", epicycles.ErrInvalidInput)
	}
	seq := make([]complex128, n)
	for i, pt := range cloud {
		seq[i] = pt.C()
	}
	var raw []complex128
	if n == 1 {
		raw = seq
	} else {
		raw = dsp.NewCmplxFFT(n).Coefficients(nil, seq)
	}
	spec := &Spectrum{n: n, coeffs: treemap.NewWithIntComparator()}
	norm := complex(float64(n), 0)
	for k, c := range raw {
		spec.coeffs.Put(BinFrequency(k, n), c/norm)
	}
	tracer().Debugf("transformed %d points, DC term %.4g", n, raw[0]/norm)
	return spec, nil
}

// N is the number of terms, which equals the number of points transformed.
func (s *Spectrum) N() int {
	return s.n
}

// Coefficient returns the coefficient at frequency f, if f is one of the
// spectrum's bins.
func (s *Spectrum) Coefficient(f int) (complex128, bool) {
	v, found := s.coeffs.Get(f)
	if !found {
		return 0, false
	}
	return v.(complex128), true
}

// Terms returns all terms in ascending frequency order.
func (s *Spectrum) Terms() []Term {
	terms := make([]Term, 0, s.n)
	it := s.coeffs.Iterator()
	for it.Next() {
		terms = append(terms, Term{Frequency: it.Key().(int), Coefficient: it.Value().(complex128)})
	}
	return terms
}

// Ranked returns all terms ordered by descending radius. Terms of equal
// radius keep DFT bin order (0, 1, …, -1).
func (s *Spectrum) Ranked() EpicycleSet {
	terms := make(EpicycleSet, s.n)
	for k := 0; k < s.n; k++ {
		f := BinFrequency(k, s.n)
		c, _ := s.Coefficient(f)
		terms[k] = Term{Frequency: f, Coefficient: c}
	}
	terms.sort()
	return terms
}

// Energy is the sum of the energies of all terms. By Parseval's relation
// it equals the mean squared magnitude of the transformed points.
func (s *Spectrum) Energy() float64 {
	return s.Ranked().Energy()
}
