// core/simlite/engine.go
//
// Package simlite is a lightweight genealogy simulator. It produces forests
// that honor the contracts the extraction pipeline depends on — sorted,
// disjoint tree intervals covering [0, seqLen) exactly; stable node
// identifiers across trees; migration records in the backward-time
// orientation — without attempting to be a faithful coalescent. It exists so
// the pipeline runs end to end and so tests have an invariant-correct
// engine; production datasets would plug in an external simulator through
// the same interface.
package simlite

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"introsim-core/feature"
	"introsim-core/genealogy"
)

// effectiveSize scales per-base rates into expected event counts, standing
// in for the 4Ne factor of a real coalescent.
const effectiveSize = 10000

// Config describes one simulated demography.
type Config struct {
	NRef, NTgt int
	Ploidy     int
	SeqLen     int

	RefName, TgtName, SrcName string

	MutRate float64 // per base per generation
	RecRate float64 // per base per generation

	// IntroPulses is the expected number of introgression pulses per
	// replicate. Zero disables introgression entirely.
	IntroPulses float64
	// IntroMeanLen is the mean introgressed tract length in bases;
	// 0 defaults to SeqLen/20.
	IntroMeanLen int
}

// Validate fails fast on parameters the simulator cannot honor.
func (c Config) Validate() error {
	if c.NRef <= 0 || c.NTgt <= 0 {
		return fmt.Errorf("need at least one reference and one target individual (nref=%d, ntgt=%d)", c.NRef, c.NTgt)
	}
	if c.Ploidy < 1 {
		return fmt.Errorf("ploidy must be >= 1, got %d", c.Ploidy)
	}
	if c.SeqLen <= 0 {
		return fmt.Errorf("sequence length must be positive, got %d", c.SeqLen)
	}
	if c.MutRate < 0 || c.RecRate < 0 {
		return fmt.Errorf("rates must be non-negative")
	}
	if c.RefName == "" || c.TgtName == "" || c.SrcName == "" {
		return fmt.Errorf("population names must be non-empty")
	}
	return nil
}

// Engine simulates one replicate per Run call.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine { return &Engine{cfg: cfg} }

// Population identifiers in the order the engine lays them out.
const (
	popRef genealogy.PopulationID = 0
	popTgt genealogy.PopulationID = 1
	popSrc genealogy.PopulationID = 2
)

// Run simulates one replicate. Deterministic: the same seed yields the same
// forest and genotypes regardless of rep, which only namespaces artifacts.
func (e *Engine) Run(rep int, seed int64) (*genealogy.Forest, feature.Genotypes, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, feature.Genotypes{}, err
	}
	rng := rand.New(rand.NewSource(seed))

	nSamples := (e.cfg.NRef + e.cfg.NTgt) * e.cfg.Ploidy
	if nSamples < 2 {
		return nil, feature.Genotypes{}, fmt.Errorf("need at least two sample genomes, got %d", nSamples)
	}
	nNodes := 2*nSamples - 1 // binary coalescent: nSamples-1 internal nodes

	nodes := make([]genealogy.Node, nNodes)
	for i := 0; i < nSamples; i++ {
		ind := int32(i / e.cfg.Ploidy)
		pop := popRef
		if int(ind) >= e.cfg.NRef {
			pop = popTgt
		}
		nodes[i] = genealogy.Node{Population: pop, Individual: ind, IsSample: true}
	}
	for i := nSamples; i < nNodes; i++ {
		nodes[i] = genealogy.Node{Population: popRef, Individual: -1}
	}

	f := &genealogy.Forest{
		SeqLen: e.cfg.SeqLen,
		Nodes:  nodes,
		Populations: []genealogy.Population{
			{Name: e.cfg.RefName},
			{Name: e.cfg.TgtName},
			{Name: e.cfg.SrcName},
		},
	}

	// Recombination breakpoints partition the sequence.
	breaks := e.breakpoints(rng)
	for i := 0; i < len(breaks)-1; i++ {
		f.Trees = append(f.Trees, e.coalesce(rng, breaks[i], breaks[i+1], nSamples, nNodes))
	}

	f.Migrations = e.migrations(rng, f)

	g := e.mutate(rng, f, nSamples)
	return f, g, nil
}

// breakpoints returns sorted positions 0 = b0 < b1 < ... < bk = SeqLen.
func (e *Engine) breakpoints(rng *rand.Rand) []int {
	n := poisson(rng, e.cfg.RecRate*float64(e.cfg.SeqLen)*4*effectiveSize)
	if n > e.cfg.SeqLen-1 {
		n = e.cfg.SeqLen - 1
	}
	seen := map[int]bool{0: true, e.cfg.SeqLen: true}
	breaks := []int{0, e.cfg.SeqLen}
	for i := 0; i < n; i++ {
		p := 1 + rng.Intn(e.cfg.SeqLen-1)
		if !seen[p] {
			seen[p] = true
			breaks = append(breaks, p)
		}
	}
	sort.Ints(breaks)
	return breaks
}

// coalesce builds one random binary genealogy over the sample nodes. The
// internal node pool [nSamples, nNodes) is shared across trees, so node
// identifiers persist forest-wide; the final merge always lands on
// nNodes-1, the root.
func (e *Engine) coalesce(rng *rand.Rand, left, right, nSamples, nNodes int) genealogy.Tree {
	parent := make([]genealogy.NodeID, nNodes)
	for i := range parent {
		parent[i] = genealogy.NilNode
	}
	active := make([]genealogy.NodeID, nSamples)
	for i := range active {
		active[i] = genealogy.NodeID(i)
	}
	next := genealogy.NodeID(nSamples)
	for len(active) > 1 {
		i := rng.Intn(len(active))
		a := active[i]
		active[i] = active[len(active)-1]
		active = active[:len(active)-1]
		j := rng.Intn(len(active))
		b := active[j]
		parent[a] = next
		parent[b] = next
		active[j] = next
		next++
	}
	return genealogy.Tree{Left: left, Right: right, Parent: parent}
}

// migrations injects introgression pulses: backward-time moves of a target
// lineage into the source population over a random sub-interval.
func (e *Engine) migrations(rng *rand.Rand, f *genealogy.Forest) []genealogy.Migration {
	nPulse := poisson(rng, e.cfg.IntroPulses)
	meanLen := e.cfg.IntroMeanLen
	if meanLen <= 0 {
		meanLen = e.cfg.SeqLen / 20
		if meanLen < 1 {
			meanLen = 1
		}
	}
	tgtSamples := f.Samples(popTgt)

	var out []genealogy.Migration
	for p := 0; p < nPulse; p++ {
		length := 1 + int(rng.ExpFloat64()*float64(meanLen))
		left := rng.Intn(e.cfg.SeqLen)
		right := left + length
		if right > e.cfg.SeqLen {
			right = e.cfg.SeqLen
		}

		// Lineage: a random target sample or one of its near ancestors in
		// the tree covering the pulse start.
		ti := sort.Search(len(f.Trees), func(i int) bool { return f.Trees[i].Right > left })
		t := &f.Trees[ti]
		node := tgtSamples[rng.Intn(len(tgtSamples))]
		for hops := rng.Intn(3); hops > 0; hops-- {
			if t.Parent[node] == genealogy.NilNode {
				break
			}
			node = t.Parent[node]
		}
		out = append(out, genealogy.Migration{
			Left:   left,
			Right:  right,
			Node:   node,
			Source: popTgt,
			Dest:   popSrc,
		})
	}
	return out
}

// mutate drops binary mutations on random branches, one derived allele per
// site (infinite-sites style over integer positions).
func (e *Engine) mutate(rng *rand.Rand, f *genealogy.Forest, nSamples int) feature.Genotypes {
	type site struct {
		pos int
		row []uint8
	}
	var sites []site
	seen := make(map[int]bool)

	for ti := range f.Trees {
		t := &f.Trees[ti]
		segLen := t.Right - t.Left
		n := poisson(rng, e.cfg.MutRate*float64(segLen)*4*effectiveSize)
		if n > segLen {
			n = segLen
		}
		for m := 0; m < n; m++ {
			pos := t.Left + rng.Intn(segLen)
			if seen[pos] {
				continue
			}
			seen[pos] = true
			// Mutation on the branch above a random non-root node; root is
			// always the last arena slot, so Intn(len-1) never picks it.
			u := genealogy.NodeID(rng.Intn(len(f.Nodes) - 1))
			row := make([]uint8, nSamples)
			carrier := false
			for s := 0; s < nSamples; s++ {
				if t.IsDescendant(genealogy.NodeID(s), u) {
					row[s] = 1
					carrier = true
				}
			}
			if !carrier {
				continue
			}
			sites = append(sites, site{pos: pos, row: row})
		}
	}

	sort.Slice(sites, func(i, j int) bool { return sites[i].pos < sites[j].pos })
	g := feature.Genotypes{
		Positions: make([]int, len(sites)),
		Alleles:   make([][]uint8, len(sites)),
	}
	for i, s := range sites {
		g.Positions[i] = s.pos
		g.Alleles[i] = s.row
	}
	return g
}

// poisson draws from Poisson(lambda); Knuth's product method for small
// lambda, a clamped normal approximation for large.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda > 30 {
		n := int(math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64()))
		if n < 0 {
			n = 0
		}
		return n
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}
