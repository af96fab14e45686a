// core/genealogy/simplify.go
package genealogy

// Simplify reduces a forest to the subgraph needed to test introgressed
// descent between src and tgt. It returns a forest restricted to nodes owned
// by either population (plus the lineage nodes of relevant migrations), and
// the migration records in the introgression direction: backward-time moves
// whose Source is tgt and whose Dest is src.
//
// Node identifiers are preserved: dropped nodes keep their slots but become
// isolated roots, and every retained node is re-parented to its nearest
// retained ancestor, so IsDescendant over retained nodes answers exactly as
// it would in the full forest.
func Simplify(f *Forest, src, tgt PopulationID) (*Forest, []Migration) {
	var migrations []Migration
	for _, m := range f.Migrations {
		if m.Source == tgt && m.Dest == src {
			migrations = append(migrations, m)
		}
	}

	keep := make([]bool, len(f.Nodes))
	for i, n := range f.Nodes {
		if n.Population == src || n.Population == tgt {
			keep[i] = true
		}
	}
	for _, m := range migrations {
		keep[m.Node] = true
	}

	trees := make([]Tree, len(f.Trees))
	for i := range f.Trees {
		trees[i] = simplifyTree(&f.Trees[i], keep)
	}

	return &Forest{
		SeqLen:      f.SeqLen,
		Nodes:       f.Nodes,
		Populations: f.Populations,
		Trees:       trees,
	}, migrations
}

func simplifyTree(t *Tree, keep []bool) Tree {
	parent := make([]NodeID, len(t.Parent))
	for n := range parent {
		if !keep[n] {
			parent[n] = NilNode
			continue
		}
		p := t.Parent[n]
		for p != NilNode && !keep[p] {
			p = t.Parent[p]
		}
		parent[n] = p
	}
	return Tree{Left: t.Left, Right: t.Right, Parent: parent}
}
