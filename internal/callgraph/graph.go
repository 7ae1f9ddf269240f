// Package callgraph builds the inter-procedural call graph of a disassembled
// program and computes worst-case stack usage over it.
package callgraph

import (
	"errors"
	"slices"
)

// Unset marks a TotalSize that has not been evaluated yet.
const Unset = -1

var (
	ErrUnknownFunction = errors.New("callgraph: function not found in program")
	ErrMalformedEdge   = errors.New("callgraph: malformed edge")
	ErrCyclic          = errors.New("callgraph: call graph has a cycle")
)

// Function is one disassembled routine.
type Function struct {
	Name         string
	Ops          []string // opcodes in listing order
	FrameCost    int      // bytes pushed by this function's own prologue
	TotalSize    int      // worst-case stack through the deepest chain, or Unset
	MaxChildSize int      // TotalSize of the heaviest callee

	calls []string // callee names, insertion order
}

// Calls returns the callee names in insertion order. The slice must not be
// modified.
func (f *Function) Calls() []string { return f.calls }

// HasCall reports whether f has an edge to callee.
func (f *Function) HasCall(callee string) bool {
	return slices.Contains(f.calls, callee)
}

func (f *Function) addCall(callee string) bool {
	if f.HasCall(callee) {
		return false
	}
	f.calls = append(f.calls, callee)
	return true
}

func (f *Function) removeCall(callee string) bool {
	i := slices.Index(f.calls, callee)
	if i < 0 {
		return false
	}
	f.calls = slices.Delete(f.calls, i, i+1)
	return true
}

// Edge is a directed caller→callee pair.
type Edge struct {
	From, To string
}

// Graph is the analysis context of one run: the function arena plus the
// bookkeeping every phase shares. Nothing is global, so independent analyses
// may coexist in one process.
type Graph struct {
	funcs []*Function
	index map[string]int

	root       string
	linked     map[Edge]struct{} // edges attributed during cycle resolution
	rendered   map[string]struct{}
	filter     map[string]struct{}
	verdicts   map[string]Verdict
	suppressed []Edge // edges cut by the cycle resolver, in cut order
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		linked:   make(map[Edge]struct{}),
		rendered: make(map[string]struct{}),
		filter:   make(map[string]struct{}),
		verdicts: make(map[string]Verdict),
	}
}

// Add creates a function record, replacing any previous one of that name.
func (g *Graph) Add(name string) *Function {
	f := &Function{Name: name, TotalSize: Unset}
	if i, ok := g.index[name]; ok {
		g.funcs[i] = f
		return f
	}
	g.index[name] = len(g.funcs)
	g.funcs = append(g.funcs, f)
	return f
}

// Lookup returns the named function, or nil.
func (g *Graph) Lookup(name string) *Function {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.funcs[i]
}

// Has reports whether name is defined in the program.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Functions returns all records in creation order.
func (g *Graph) Functions() []*Function { return g.funcs }

// Len returns the number of functions.
func (g *Graph) Len() int { return len(g.funcs) }

// Calls returns the callees of name, or nil when name is undefined.
func (g *Graph) Calls(name string) []string {
	if f := g.Lookup(name); f != nil {
		return f.calls
	}
	return nil
}

// Link adds the edge from→to. from must exist; to may be external.
func (g *Graph) Link(from, to string) bool {
	f := g.Lookup(from)
	if f == nil {
		return false
	}
	return f.addCall(to)
}

// Unlink removes the edge from→to.
func (g *Graph) Unlink(from, to string) bool {
	f := g.Lookup(from)
	if f == nil {
		return false
	}
	return f.removeCall(to)
}

// Root returns the traversal origin chosen by ResolveRoot.
func (g *Graph) Root() string { return g.root }

// SetRoot overrides the traversal origin.
func (g *Graph) SetRoot(name string) { g.root = name }

// Suppressed returns the edges removed to break cycles.
func (g *Graph) Suppressed() []Edge { return g.suppressed }

// isLeaf reports whether name has no outgoing calls (undefined names
// included).
func (g *Graph) isLeaf(name string) bool {
	return len(g.Calls(name)) == 0
}

// Reaches reports whether a path from → … → to exists over the current
// edges. Each query uses its own visited set.
func (g *Graph) Reaches(from, to string) bool {
	visited := map[string]struct{}{from: {}}
	stack := []string{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range g.Calls(n) {
			if c == to {
				return true
			}
			if _, seen := visited[c]; seen {
				continue
			}
			visited[c] = struct{}{}
			stack = append(stack, c)
		}
	}
	return false
}
