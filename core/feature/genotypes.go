// core/feature/genotypes.go
package feature

import "sort"

// Genotypes is a site-major biallelic genotype matrix: Alleles[i][h] is the
// allele (0 ancestral, 1 derived) of haplotype column h at Positions[i].
// Positions are sorted ascending within [0, seqLen).
type Genotypes struct {
	Positions []int
	Alleles   [][]uint8
}

// NumSites returns the number of polymorphic sites.
func (g Genotypes) NumSites() int { return len(g.Positions) }

// NumHaplotypes returns the number of haplotype columns, 0 when empty.
func (g Genotypes) NumHaplotypes() int {
	if len(g.Alleles) == 0 {
		return 0
	}
	return len(g.Alleles[0])
}

// SiteRange returns the half-open index range of sites falling in [ws, we).
func (g Genotypes) SiteRange(ws, we int) (int, int) {
	lo := sort.SearchInts(g.Positions, ws)
	hi := sort.SearchInts(g.Positions, we)
	return lo, hi
}

// TargetSample names one target sample and the haplotype columns backing it:
// a single column for phased data, ploidy columns for unphased data.
type TargetSample struct {
	ID   string
	Cols []int
}

// Manifest maps population membership onto genotype columns.
type Manifest struct {
	Ref []int
	Tgt []TargetSample
}
