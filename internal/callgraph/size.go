package callgraph

import "fmt"

// TotalSize returns the worst-case stack usage of name: its own frame plus
// the heaviest single callee chain. Only one callee is active at a time, so
// callee totals are combined with max, not summed. Results are memoized on
// the Function records. Undefined names cost nothing.
//
// The graph reachable from name must be acyclic; ErrCyclic is returned
// otherwise.
func (g *Graph) TotalSize(name string) (int, error) {
	f := g.Lookup(name)
	if f == nil {
		return 0, nil
	}
	if f.TotalSize != Unset {
		return f.TotalSize, nil
	}

	// Post-order over an explicit stack; onStack detects cycles.
	type item struct {
		f    *Function
		next int
	}
	onStack := map[string]struct{}{f.Name: {}}
	stack := []item{{f: f}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.f.calls) {
			c := g.Lookup(top.f.calls[top.next])
			top.next++
			if c == nil || c.TotalSize != Unset {
				continue
			}
			if _, ok := onStack[c.Name]; ok {
				return 0, fmt.Errorf("%w: %s -> %s", ErrCyclic, top.f.Name, c.Name)
			}
			onStack[c.Name] = struct{}{}
			stack = append(stack, item{f: c})
			continue
		}

		cur := top.f
		cur.MaxChildSize = 0
		for _, name := range cur.calls {
			if c := g.Lookup(name); c != nil && c.TotalSize > cur.MaxChildSize {
				cur.MaxChildSize = c.TotalSize
			}
		}
		cur.TotalSize = cur.FrameCost + cur.MaxChildSize
		delete(onStack, cur.Name)
		stack = stack[:len(stack)-1]
	}
	return f.TotalSize, nil
}

// Evaluate computes TotalSize for every function reachable from root.
func (g *Graph) Evaluate(root string) error {
	_, err := g.TotalSize(root)
	return err
}

// WorstPath returns the call chain that realizes TotalSize(name), starting
// with name. Ties go to the callee listed first. The graph must have been
// evaluated.
func (g *Graph) WorstPath(name string) []string {
	var path []string
	seen := make(map[string]struct{})
	for f := g.Lookup(name); f != nil; {
		if _, ok := seen[f.Name]; ok {
			break
		}
		seen[f.Name] = struct{}{}
		path = append(path, f.Name)
		var next *Function
		for _, c := range f.calls {
			cf := g.Lookup(c)
			if cf == nil || cf.TotalSize == Unset {
				continue
			}
			if next == nil || cf.TotalSize > next.TotalSize {
				next = cf
			}
		}
		f = next
	}
	return path
}
