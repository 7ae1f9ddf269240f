// Package render produces the text report and Graphviz DOT output of a
// stack analysis.
package render

import (
	"fmt"
	"slices"
	"strings"

	"armra/internal/callgraph"
)

// Output is one rendering of an evaluated graph.
type Output struct {
	Report string // per-function size report
	DOT    string // filtered call graph
}

const separator = "-------------------------"

// Stack walks the graph depth first from its root, emitting every function
// once. The report lists each function's total and its callees' totals. The
// DOT graph keeps only functions accepted by the graph's filter; cut cycle
// edges are drawn dotted when no filter is active. Callees missing from the
// program are left out of both.
func Stack(g *callgraph.Graph) Output {
	g.ResetRendered()
	root := g.Root()

	var rep, dot strings.Builder
	dot.WriteString("digraph cfg {\n")

	stack := []string{root}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !g.MarkRendered(name) {
			continue
		}
		f := g.Lookup(name)
		if f == nil {
			continue
		}

		fmt.Fprintf(&rep, "%s\n### NODE: %s:%d B\n### CALL_LIST:\n", separator, name, f.TotalSize)

		var nodes, labels strings.Builder
		if name == root {
			writeLabel(&labels, f)
		}
		open := name == root || g.Include(name) == callgraph.VerdictInclude
		for _, c := range f.Calls() {
			cf := g.Lookup(c)
			if cf == nil {
				continue
			}
			fmt.Fprintf(&rep, "%s:%d\n", c, cf.TotalSize)
			if g.Include(c) == callgraph.VerdictInclude {
				nodes.WriteString(c + " ")
				writeLabel(&labels, cf)
			}
		}
		if open {
			fmt.Fprintf(&dot, "%s->{%s}\n", name, nodes.String())
		}
		dot.WriteString(labels.String())
		if open && nodes.Len() > 0 {
			fmt.Fprintf(&dot, "{rank=same; %s}\n", nodes.String())
		}

		calls := slices.Clone(f.Calls())
		slices.Reverse(calls)
		stack = append(stack, calls...)
	}

	if !g.Filtered() {
		for _, e := range g.Suppressed() {
			fmt.Fprintf(&dot, "%s->%s[style=dotted arrowhead=empty]\n", e.From, e.To)
		}
	}
	dot.WriteString("}\n")
	return Output{Report: rep.String(), DOT: dot.String()}
}

func writeLabel(b *strings.Builder, f *callgraph.Function) {
	fmt.Fprintf(b, "%s[label=\"%s\\n(%d B)\"];\n", f.Name, f.Name, f.TotalSize)
}
