package callgraph

import (
	"fmt"

	"github.com/zboralski/lattice"
)

// Lattice exports the part of the graph reachable from root as a
// lattice.Graph for overview rendering. Nodes are labeled "name (N B)".
// Edges to undefined functions are skipped.
func (g *Graph) Lattice(root string) *lattice.Graph {
	lg := &lattice.Graph{}
	if !g.Has(root) {
		return lg
	}
	reach := g.reachableFrom(root, nil)
	label := func(f *Function) string {
		if f.TotalSize == Unset {
			return f.Name
		}
		return fmt.Sprintf("%s (%d B)", f.Name, f.TotalSize)
	}
	for _, f := range g.funcs {
		if _, ok := reach[f.Name]; !ok {
			continue
		}
		lg.Nodes = append(lg.Nodes, label(f))
		for _, c := range f.calls {
			cf := g.Lookup(c)
			if cf == nil {
				continue
			}
			lg.Edges = append(lg.Edges, lattice.Edge{
				Caller: label(f),
				Callee: label(cf),
			})
		}
	}
	lg.Dedup()
	return lg
}
