// core/tract/extract.go
package tract

import (
	"fmt"
	"sort"

	"introsim-core/genealogy"
)

// Tract is a genomic interval attributed to introgressed ancestry for one
// sample. Chromosome is fixed to "1": simulations cover a single chromosome.
type Tract struct {
	Chrom  string
	Start  int
	End    int
	Sample string
}

// SampleName formats the identifier for a sample node. Phased data keeps the
// haplotypes of an individual apart with a 1-based suffix; unphased data
// pools them under the bare individual id.
func SampleName(n genealogy.NodeID, ind int32, ploidy int, phased bool) string {
	if phased {
		return fmt.Sprintf("ind_%d_%d", ind, int(n)%ploidy+1)
	}
	return fmt.Sprintf("ind_%d", ind)
}

// Extract computes the raw introgressed tracts for every sample of the tgt
// population: the genomic intervals over which the sample descends from a
// lineage that migrated (backward in time) from tgt into src. The result may
// contain overlapping or adjacent fragments; pass it through Merge before
// writing it out.
func Extract(f *genealogy.Forest, srcName, tgtName string, ploidy int, phased bool) ([]Tract, error) {
	srcID, err := f.PopulationID(srcName)
	if err != nil {
		return nil, err
	}
	tgtID, err := f.PopulationID(tgtName)
	if err != nil {
		return nil, err
	}

	tgtSamples := f.Samples(tgtID)
	simplified, migrations := genealogy.Simplify(f, srcID, tgtID)

	var tracts []Tract
	for _, m := range migrations {
		// Tree intervals are sorted and disjoint: locate the first tree that
		// can overlap [m.Left, m.Right) by binary search, then scan forward
		// until a tree starts at or past m.Right.
		trees := simplified.Trees
		i := sort.Search(len(trees), func(i int) bool { return trees[i].Right > m.Left })
		for ; i < len(trees); i++ {
			t := &trees[i]
			if t.Left >= m.Right {
				break
			}
			for _, n := range tgtSamples {
				if !t.IsDescendant(n, m.Node) {
					continue
				}
				left := m.Left
				if t.Left > left {
					left = t.Left
				}
				right := m.Right
				if t.Right < right {
					right = t.Right
				}
				tracts = append(tracts, Tract{
					Chrom:  "1",
					Start:  left,
					End:    right,
					Sample: SampleName(n, f.Nodes[n].Individual, ploidy, phased),
				})
			}
		}
	}
	return tracts, nil
}
