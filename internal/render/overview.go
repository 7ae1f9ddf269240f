package render

import (
	latrender "github.com/zboralski/lattice/render"

	"armra/internal/callgraph"
)

// Overview renders the pruned call graph reachable from the root with the
// lattice renderer. Unlike Stack it ignores the filter and the suppressed
// edges; node labels carry the evaluated totals.
func Overview(g *callgraph.Graph, title string) string {
	return latrender.DOT(g.Lattice(g.Root()), title)
}

// FuncSummary is one function's entry in functions.json.
type FuncSummary struct {
	Name      string   `json:"name"`
	FrameCost int      `json:"frame_cost"`
	TotalSize int      `json:"total_size"`
	Callees   []string `json:"callees,omitempty"`
	WorstPath []string `json:"worst_path,omitempty"`
}

// Summary lists every evaluated function in creation order.
func Summary(g *callgraph.Graph) []FuncSummary {
	var out []FuncSummary
	for _, f := range g.Functions() {
		if f.TotalSize == callgraph.Unset {
			continue
		}
		s := FuncSummary{
			Name:      f.Name,
			FrameCost: f.FrameCost,
			TotalSize: f.TotalSize,
			WorstPath: g.WorstPath(f.Name),
		}
		for _, c := range f.Calls() {
			if g.Has(c) {
				s.Callees = append(s.Callees, c)
			}
		}
		out = append(out, s)
	}
	return out
}
