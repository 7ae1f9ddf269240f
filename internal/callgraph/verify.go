package callgraph

import (
	"fmt"
	"slices"

	"github.com/yourbasic/graph"
)

// adjacency converts the defined part of the graph into an integer graph
// whose vertex i is g.funcs[i]. Edges to undefined names are dropped.
func (g *Graph) adjacency() *graph.Mutable {
	m := graph.New(len(g.funcs))
	for i, f := range g.funcs {
		for _, c := range f.calls {
			if j, ok := g.index[c]; ok {
				m.Add(i, j)
			}
		}
	}
	return m
}

// Acyclic reports whether no function can reach itself.
func (g *Graph) Acyclic() bool {
	return graph.Acyclic(g.adjacency())
}

// VerifyAcyclic returns ErrCyclic naming one recursion group when the part of
// the graph reachable from root still has a cycle.
func (g *Graph) VerifyAcyclic(root string) error {
	if !g.Has(root) {
		return nil
	}
	reach := g.reachableFrom(root, nil)
	for _, group := range g.RecursionGroups() {
		if _, ok := reach[group[0]]; ok {
			return fmt.Errorf("%w: %v", ErrCyclic, group)
		}
	}
	return nil
}

// RecursionGroups returns the sets of mutually recursive functions: strongly
// connected components with more than one member, plus functions that call
// themselves. Members keep creation order, groups are ordered by their first
// member.
func (g *Graph) RecursionGroups() [][]string {
	var groups [][]string
	for _, comp := range graph.StrongComponents(g.adjacency()) {
		if len(comp) == 1 && !g.funcs[comp[0]].HasCall(g.funcs[comp[0]].Name) {
			continue
		}
		groups = append(groups, g.names(comp))
	}
	sortGroups(groups, g.index)
	return groups
}

func (g *Graph) names(ids []int) []string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	out := make([]string, len(sorted))
	for i, id := range sorted {
		out[i] = g.funcs[id].Name
	}
	return out
}

func sortGroups(groups [][]string, index map[string]int) {
	slices.SortFunc(groups, func(a, b []string) int {
		return index[a[0]] - index[b[0]]
	})
}
