// core/window/labeler.go
package window

import (
	"introsim-core/tract"
)

// Window is one fixed-length genomic bin tiling [0, seqLen). The last bin
// may be shorter when the window length does not divide the sequence.
type Window struct {
	Start, End int
}

// Tile partitions [0, seqLen) into non-overlapping windows of winLen bases.
func Tile(seqLen, winLen int) []Window {
	if winLen <= 0 || winLen > seqLen {
		winLen = seqLen
	}
	var out []Window
	for ws := 0; ws < seqLen; ws += winLen {
		we := ws + winLen
		if we > seqLen {
			we = seqLen
		}
		out = append(out, Window{Start: ws, End: we})
	}
	return out
}

// Label is the binary introgression call for one (window, sample) pair.
type Label struct {
	Start, End int
	Sample     string
	Label      int
}

// Labeler assigns binary labels from tract coverage. A window whose covered
// fraction is at least IntroProp is introgressed (1); at most NonIntroProp,
// non-introgressed (0); anything strictly between the two thresholds is
// ambiguous and yields no label at all.
//
// Pooling of an individual's haplotypes in unphased mode happens upstream:
// unphased tract extraction emits per-individual sample identifiers, so the
// merged tracts passed here already combine haplotype coverage.
type Labeler struct {
	WinLen       int
	IntroProp    float64
	NonIntroProp float64
}

// Run labels every (window, sample) pair. Samples with no tracts are still
// evaluated (coverage zero). The output is ordered by window, then by the
// order of the samples argument.
func (l Labeler) Run(tracts []tract.Tract, samples []string, seqLen int) []Label {
	bySample := tract.BySample(tracts)
	var out []Label
	for _, w := range Tile(seqLen, l.WinLen) {
		for _, s := range samples {
			covered := tract.Coverage(bySample[s], w.Start, w.End)
			frac := float64(covered) / float64(w.End-w.Start)
			switch {
			case frac >= l.IntroProp:
				out = append(out, Label{Start: w.Start, End: w.End, Sample: s, Label: 1})
			case frac <= l.NonIntroProp:
				out = append(out, Label{Start: w.Start, End: w.End, Sample: s, Label: 0})
			}
		}
	}
	return out
}
