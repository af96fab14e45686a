// internal/dense/item.go
package dense

import (
	"introsim-core/feature"
	"introsim-core/tract"
	"introsim-core/window"
)

// Item is one window-matrix training example: the raw genotype block of a
// labeled window, padded or trimmed to a fixed site count, plus a per-site
// mask marking which sites fall inside the sample's introgressed tracts.
type Item struct {
	Replicate  int
	Chromosome string
	Start, End int
	Sample     string
	Label      int

	// Positions holds NSite site coordinates, -1 in padded slots.
	Positions []int
	// Genotypes holds NSite*nHap alleles, site-major, zero in padded slots.
	Genotypes []uint8
	// Mask holds NSite flags, 1 where the site lies inside one of the
	// sample's tracts.
	Mask []uint8
}

// Build turns one replicate's labeled windows into fixed-size matrix items.
// Every window that cleared a label threshold yields one item per labeled
// sample; ambiguous windows yield nothing, matching the scalar path.
func Build(rep int, g feature.Genotypes, tracts []tract.Tract, labels []window.Label, nsite int) []Item {
	bySample := tract.BySample(tracts)

	var out []Item
	for _, l := range labels {
		lo, hi := g.SiteRange(l.Start, l.End)
		it := Item{
			Replicate:  rep,
			Chromosome: "1",
			Start:      l.Start,
			End:        l.End,
			Sample:     l.Sample,
			Label:      l.Label,
			Positions:  make([]int, nsite),
			Genotypes:  make([]uint8, nsite*g.NumHaplotypes()),
			Mask:       make([]uint8, nsite),
		}
		for s := range it.Positions {
			it.Positions[s] = -1
		}
		n := hi - lo
		if n > nsite {
			n = nsite // trim trailing sites past the fixed width
		}
		for s := 0; s < n; s++ {
			pos := g.Positions[lo+s]
			it.Positions[s] = pos
			copy(it.Genotypes[s*g.NumHaplotypes():], g.Alleles[lo+s])
			if covered(bySample[l.Sample], pos) {
				it.Mask[s] = 1
			}
		}
		out = append(out, it)
	}
	return out
}

func covered(tracts []tract.Tract, pos int) bool {
	for _, t := range tracts {
		if pos >= t.Start && pos < t.End {
			return true
		}
	}
	return false
}
