package callgraph

// Well-known entry symbols, in canonical form.
const (
	StartFunc      = "_start"
	MainFunc       = "main"
	LibcStartFunc  = "__libc_start_main"
	DummyStartFunc = "dummy_start"
)

// ResolveRoot picks the traversal origin and returns it.
//
// main is linked under the C library startup routine (or _start) because the
// runtime reaches it through a pointer the disassembler cannot follow. When
// _start is missing, every function that nothing calls is attached to a
// synthetic dummy_start, which becomes the root. Call cycles that nothing
// enters are attached through their first function in listing order, so a
// program made only of cycles still gets a dummy_start. Only an empty program
// keeps the undefined _start as root, and evaluation then yields nothing.
func (g *Graph) ResolveRoot() string {
	if g.Has(MainFunc) {
		switch {
		case g.Has(LibcStartFunc):
			g.Link(LibcStartFunc, MainFunc)
		case g.Has(StartFunc):
			g.Link(StartFunc, MainFunc)
		}
	}

	g.root = StartFunc
	if g.Has(StartFunc) {
		return g.root
	}
	if g.Len() == 0 {
		return g.root
	}
	orphans := g.Orphans()
	g.Add(DummyStartFunc)
	for _, name := range orphans {
		g.Link(DummyStartFunc, name)
	}
	g.root = DummyStartFunc

	seen := g.reachableFrom(DummyStartFunc, nil)
	for _, f := range g.funcs {
		if _, ok := seen[f.Name]; ok {
			continue
		}
		g.Link(DummyStartFunc, f.Name)
		g.reachableFrom(f.Name, seen)
	}
	return g.root
}

// reachableFrom adds name and every function reachable from it to seen,
// allocating seen when nil.
func (g *Graph) reachableFrom(name string, seen map[string]struct{}) map[string]struct{} {
	if seen == nil {
		seen = make(map[string]struct{})
	}
	seen[name] = struct{}{}
	stack := []string{name}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range g.Calls(n) {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			stack = append(stack, c)
		}
	}
	return seen
}

// Orphans returns, in creation order, the functions no other function calls.
// A function that only calls itself counts as an orphan.
func (g *Graph) Orphans() []string {
	called := make(map[string]struct{})
	for _, f := range g.funcs {
		for _, c := range f.calls {
			if c != f.Name {
				called[c] = struct{}{}
			}
		}
	}
	var out []string
	for _, f := range g.funcs {
		if _, ok := called[f.Name]; !ok {
			out = append(out, f.Name)
		}
	}
	return out
}
