// core/feature/stats.go
package feature

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Vector is one computed feature vector, keyed by sample identifier for the
// downstream label join.
type Vector struct {
	Sample string
	Values []float64
}

// statFunc computes one per-sample summary over the sites of a window.
type statFunc func(w *winView, s TargetSample) float64

// registry maps feature names to implementations; order fixes the default
// column order.
var (
	registry = map[string]statFunc{
		"seg_sites":     segSites,
		"derived_count": derivedCount,
		"private_count": privateCount,
		"min_ref_dist":  minRefDist,
		"mean_ref_dist": meanRefDist,
		"mean_tgt_freq": meanTgtFreq,
	}
	order = []string{
		"seg_sites",
		"derived_count",
		"private_count",
		"min_ref_dist",
		"mean_ref_dist",
		"mean_tgt_freq",
	}
)

// winView caches per-window site summaries shared by all statistics.
type winView struct {
	g       Genotypes
	man     Manifest
	lo, hi  int       // site index range
	refFreq []float64 // derived-allele frequency among reference columns
	tgtFreq []float64 // derived-allele frequency among all target columns
	allSeg  []bool    // segregating across ref+tgt columns
}

func newWinView(g Genotypes, ws, we int, man Manifest) *winView {
	lo, hi := g.SiteRange(ws, we)
	v := &winView{
		g:       g,
		man:     man,
		lo:      lo,
		hi:      hi,
		refFreq: make([]float64, hi-lo),
		tgtFreq: make([]float64, hi-lo),
		allSeg:  make([]bool, hi-lo),
	}
	var tgtCols []int
	for _, s := range man.Tgt {
		tgtCols = append(tgtCols, s.Cols...)
	}
	for i := lo; i < hi; i++ {
		row := g.Alleles[i]
		v.refFreq[i-lo] = colFreq(row, man.Ref)
		v.tgtFreq[i-lo] = colFreq(row, tgtCols)
		total := 0
		for _, c := range man.Ref {
			total += int(row[c])
		}
		for _, c := range tgtCols {
			total += int(row[c])
		}
		v.allSeg[i-lo] = total > 0 && total < len(man.Ref)+len(tgtCols)
	}
	return v
}

func colFreq(row []uint8, cols []int) float64 {
	if len(cols) == 0 {
		return 0
	}
	n := 0
	for _, c := range cols {
		n += int(row[c])
	}
	return float64(n) / float64(len(cols))
}

// dosage is the derived-allele fraction of the sample's columns at site i
// (absolute index): 0 or 1 for phased singletons, fractional when pooled.
func (v *winView) dosage(i int, s TargetSample) float64 {
	return colFreq(v.g.Alleles[i], s.Cols)
}

// carries reports whether the sample holds at least one derived allele at
// site i.
func (v *winView) carries(i int, s TargetSample) bool {
	for _, c := range s.Cols {
		if v.g.Alleles[i][c] != 0 {
			return true
		}
	}
	return false
}

func segSites(v *winView, _ TargetSample) float64 {
	n := 0
	for _, s := range v.allSeg {
		if s {
			n++
		}
	}
	return float64(n)
}

func derivedCount(v *winView, s TargetSample) float64 {
	n := 0
	for i := v.lo; i < v.hi; i++ {
		if v.carries(i, s) {
			n++
		}
	}
	return float64(n)
}

func privateCount(v *winView, s TargetSample) float64 {
	n := 0
	for i := v.lo; i < v.hi; i++ {
		if v.carries(i, s) && v.refFreq[i-v.lo] == 0 {
			n++
		}
	}
	return float64(n)
}

// refDists returns, for each reference haplotype, the summed absolute
// difference between the sample's dosage and the reference allele across the
// window's sites.
func refDists(v *winView, s TargetSample, man Manifest) []float64 {
	dists := make([]float64, len(man.Ref))
	for j, rc := range man.Ref {
		d := 0.0
		for i := v.lo; i < v.hi; i++ {
			diff := v.dosage(i, s) - float64(v.g.Alleles[i][rc])
			if diff < 0 {
				diff = -diff
			}
			d += diff
		}
		dists[j] = d
	}
	return dists
}

func minRefDist(v *winView, s TargetSample) float64 {
	dists := refDists(v, s, v.man)
	if len(dists) == 0 {
		return 0
	}
	return floats.Min(dists)
}

func meanRefDist(v *winView, s TargetSample) float64 {
	dists := refDists(v, s, v.man)
	if len(dists) == 0 {
		return 0
	}
	return stat.Mean(dists, nil)
}

func meanTgtFreq(v *winView, s TargetSample) float64 {
	var freqs []float64
	for i := v.lo; i < v.hi; i++ {
		if v.carries(i, s) {
			freqs = append(freqs, v.tgtFreq[i-v.lo])
		}
	}
	if len(freqs) == 0 {
		return 0
	}
	return stat.Mean(freqs, nil)
}

// Compute evaluates the configured statistics for every target sample over
// the window [ws, we). Values follow cfg.Features order; vectors follow
// manifest order. Pure function of its inputs.
func Compute(cfg Config, g Genotypes, ws, we int, man Manifest) ([]Vector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v := newWinView(g, ws, we, man)
	out := make([]Vector, 0, len(man.Tgt))
	for _, s := range man.Tgt {
		vals := make([]float64, len(cfg.Features))
		for i, name := range cfg.Features {
			vals[i] = registry[name](v, s)
		}
		out = append(out, Vector{Sample: s.ID, Values: vals})
	}
	return out, nil
}
