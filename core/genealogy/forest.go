// core/genealogy/forest.go
package genealogy

import (
	"errors"
	"fmt"
)

// NodeID is a dense index into Forest.Nodes.
type NodeID int32

// NilNode marks a root (no ancestor in the current tree).
const NilNode NodeID = -1

// PopulationID is a dense index into Forest.Populations.
type PopulationID int32

// ErrPopulationNotFound is returned when a population name does not resolve
// against a forest's population table.
var ErrPopulationNotFound = errors.New("population not found")

// Node is one haploid genome copy somewhere in the genealogy.
type Node struct {
	Population PopulationID
	Individual int32 // owning individual, for diploid reconstruction
	IsSample   bool  // sampled leaf at the present time
}

// Population is a named group of nodes.
type Population struct {
	Name string
}

// Migration records that, over [Left, Right), the lineage rooted at Node
// moved from population Source to population Dest looking backward in time.
type Migration struct {
	Left, Right int
	Node        NodeID
	Source      PopulationID
	Dest        PopulationID
}

// Tree is one marginal genealogy, valid over [Left, Right). Parent is indexed
// by NodeID; roots carry NilNode.
type Tree struct {
	Left, Right int
	Parent      []NodeID
}

// Forest is an ordered sequence of trees whose intervals partition
// [0, SeqLen) with no gaps or overlaps.
type Forest struct {
	SeqLen      int
	Nodes       []Node
	Populations []Population
	Trees       []Tree
	Migrations  []Migration
}

// PopulationID resolves a population name to its identifier.
func (f *Forest) PopulationID(name string) (PopulationID, error) {
	for i, p := range f.Populations {
		if p.Name == name {
			return PopulationID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrPopulationNotFound, name)
}

// Samples returns the sampled leaf nodes owned by pop, in NodeID order.
func (f *Forest) Samples(pop PopulationID) []NodeID {
	var out []NodeID
	for i, n := range f.Nodes {
		if n.IsSample && n.Population == pop {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// Validate checks the interval partition invariant: tree intervals are
// sorted, disjoint, and cover [0, SeqLen) exactly.
func (f *Forest) Validate() error {
	if f.SeqLen <= 0 {
		return fmt.Errorf("non-positive sequence length %d", f.SeqLen)
	}
	if len(f.Trees) == 0 {
		return errors.New("forest has no trees")
	}
	want := 0
	for i, t := range f.Trees {
		if t.Left != want {
			return fmt.Errorf("tree %d starts at %d, want %d", i, t.Left, want)
		}
		if t.Right <= t.Left {
			return fmt.Errorf("tree %d has empty interval [%d, %d)", i, t.Left, t.Right)
		}
		if len(t.Parent) != len(f.Nodes) {
			return fmt.Errorf("tree %d parent table has %d entries, want %d", i, len(t.Parent), len(f.Nodes))
		}
		want = t.Right
	}
	if want != f.SeqLen {
		return fmt.Errorf("trees cover [0, %d), want [0, %d)", want, f.SeqLen)
	}
	return nil
}

// IsDescendant reports whether anc lies on the path from n to its root,
// n itself included. O(depth) parent-pointer walk.
func (t *Tree) IsDescendant(n, anc NodeID) bool {
	if anc == NilNode {
		return false
	}
	for u := n; u != NilNode; u = t.Parent[u] {
		if u == anc {
			return true
		}
	}
	return false
}
