package fourier

import (
	"fmt"
	"math"
	"slices"

	"github.com/npillmayer/epicycles"
)

// EpicycleSet is an ordered list of Fourier terms. Order matters: it is
// the chaining order of the nested circles, innermost (attached to the
// origin) first. Select produces sets ordered by descending radius.
type EpicycleSet []Term

// sort orders terms by descending radius, keeping the order of equal ones.
func (set EpicycleSet) sort() {
	slices.SortStableFunc(set, func(a, b Term) int {
		ra, rb := a.Radius(), b.Radius()
		switch {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		}
		return 0
	})
}

// Energy is the sum of the energies of all terms, summed in set order.
func (set EpicycleSet) Energy() float64 {
	e := 0.0
	for _, term := range set {
		e += term.Energy()
	}
	return e
}

// Selection reports how an epicycle set was chosen.
type Selection struct {
	N                    int     // number of terms available
	K0                   int     // terms needed to reach the energy threshold
	K                    int     // terms selected, K0 clamped to the configured bounds
	TotalEnergy          float64 // energy of all N terms
	EnergyRatio          float64 // fraction of the total energy carried by the K selected terms
	ThresholdUnreachable bool    // threshold not met before exhausting all terms
}

func (sel Selection) String() string {
	return fmt.Sprintf("%d epicycles (%.1f%% energy)", sel.K, sel.EnergyRatio*100)
}

// Select chooses the strongest terms of a spectrum.
//
// Terms are ranked by descending radius. K0 is the length of the shortest
// prefix of the ranking whose share of the total energy is at least
// conf.EnergyThreshold; if floating point rounding keeps the share below
// the threshold up to the end, K0 is N. The number of terms returned is
// K0, clamped to [conf.MinEpicycles, conf.MaxEpicycles], but never more
// than N. The energy ratio reported is the one achieved by the terms
// returned.
//
// A spectrum without any energy (all points at the origin) reaches every
// threshold with its first term.
func Select(spec *Spectrum, conf epicycles.Config) (EpicycleSet, Selection) {
	ranked := spec.Ranked()
	sel := Selection{N: len(ranked), TotalEnergy: ranked.Energy()}
	if sel.TotalEnergy == 0 {
		sel.K0 = min(1, sel.N)
	} else {
		cumulative := 0.0
		for i, term := range ranked {
			cumulative += term.Energy()
			if cumulative/sel.TotalEnergy >= conf.EnergyThreshold {
				sel.K0 = i + 1
				break
			}
		}
		if sel.K0 == 0 {
			sel.ThresholdUnreachable = true
			sel.K0 = sel.N
			tracer().Infof("energy threshold %g not reached, using all %d terms",
				conf.EnergyThreshold, sel.N)
		}
	}
	sel.K = max(conf.MinEpicycles, min(sel.K0, conf.MaxEpicycles))
	if sel.K > sel.N {
		tracer().Debugf("only %d terms available, %d requested", sel.N, sel.K)
		sel.K = sel.N
	}
	set := ranked[:sel.K:sel.K]
	sel.EnergyRatio = energyRatio(set.Energy(), sel.TotalEnergy)
	tracer().Infof("selected %s, %d needed for threshold %g", sel, sel.K0, conf.EnergyThreshold)
	return set, sel
}

func energyRatio(e, total float64) float64 {
	if total == 0 {
		return 1
	}
	return math.Min(e/total, 1)
}

// Analyze transforms a cloud and selects its epicycles.
func Analyze(cloud epicycles.Cloud, conf epicycles.Config) (EpicycleSet, Selection, error) {
	spec, err := Transform(cloud)
	if err != nil {
		return nil, Selection{}, err
	}
	set, sel := Select(spec, conf)
	return set, sel, nil
}
