package callgraph

import "armra/internal/disasm"

// Verdict is the memoized answer to "does this function belong in the
// filtered rendering".
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictInclude
	VerdictExclude
)

// SetFilter restricts rendering to the named functions and the functions
// that can reach them. An empty list disables filtering. Names are
// canonicalized.
func (g *Graph) SetFilter(names []string) {
	g.filter = make(map[string]struct{}, len(names))
	g.verdicts = make(map[string]Verdict)
	for _, n := range names {
		if n != "" {
			g.filter[disasm.CanonicalName(n)] = struct{}{}
		}
	}
}

// Filtered reports whether an allow-list is active.
func (g *Graph) Filtered() bool { return len(g.filter) > 0 }

// Include decides whether name is rendered: always without a filter,
// otherwise when name is listed or reaches a listed function.
func (g *Graph) Include(name string) Verdict {
	if len(g.filter) == 0 {
		return VerdictInclude
	}
	if v := g.verdicts[name]; v != VerdictUnknown {
		return v
	}
	v := VerdictExclude
	if _, ok := g.filter[name]; ok {
		v = VerdictInclude
	} else {
		for target := range g.filter {
			if g.Reaches(name, target) {
				v = VerdictInclude
				break
			}
		}
	}
	g.verdicts[name] = v
	return v
}

// MarkRendered records that name has been emitted and reports whether this
// is the first time.
func (g *Graph) MarkRendered(name string) bool {
	if _, ok := g.rendered[name]; ok {
		return false
	}
	g.rendered[name] = struct{}{}
	return true
}

// ResetRendered forgets previous renderings so the graph can be rendered
// again from scratch.
func (g *Graph) ResetRendered() {
	g.rendered = make(map[string]struct{})
}
