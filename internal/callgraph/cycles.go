package callgraph

import (
	"slices"

	"armra/internal/config"
)

// action is the resolver's decision for one candidate edge.
type action int

const (
	actionSkip    action = iota // cannot close a cycle
	actionCut                   // closes a cycle: remove it
	actionDescend               // explore the callee's subtree
)

// frame is one pending node of the depth-first walk. calls is a snapshot
// taken when the node was entered, so cuts made below do not disturb the
// iteration order.
type frame struct {
	to    string
	calls []string
	next  int
}

// ResolveCycles removes the edges that close a cycle in the part of the
// graph reachable from root, leaving it acyclic. The walk is depth first in
// call-list order; the first closing edge met is the one cut. Cut edges are
// recorded in Suppressed for display.
//
// Every function entered by the walk, the root's own callees included, is
// attributed under root. For an edge to→curr the edge is cut when both ends
// are attributed and curr can reach to again, which only holds for a curr
// still on the walk stack. Entries of a call-list snapshot that were cut
// since it was taken are ignored. Leaves and callees whose children are all
// leaves are never cycle members and are skipped. Subtrees whose walk already
// completed are acyclic and are not walked again.
func (g *Graph) ResolveCycles(root string, log *config.LogGroup) {
	if !g.Has(root) {
		return
	}
	done := make(map[string]struct{})
	var stack []frame
	enter := func(name string) {
		stack = append(stack, frame{to: name, calls: slices.Clone(g.Calls(name))})
		log.Tracef("from %s -> %s, calls %v", root, name, g.Calls(name))
	}

	for _, child := range slices.Clone(g.Calls(root)) {
		g.linked[Edge{From: root, To: child}] = struct{}{}
		if _, ok := done[child]; ok {
			continue
		}
		enter(child)
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.calls) {
				done[top.to] = struct{}{}
				stack = stack[:len(stack)-1]
				continue
			}
			to, curr := top.to, top.calls[top.next]
			top.next++

			switch g.decide(root, to, curr) {
			case actionSkip:
			case actionCut:
				g.Unlink(to, curr)
				g.suppressed = append(g.suppressed, Edge{From: to, To: curr})
				log.Debugf("cycle: suppressed edge %s -> %s", to, curr)
			case actionDescend:
				g.linked[Edge{From: root, To: curr}] = struct{}{}
				if _, ok := done[curr]; !ok {
					enter(curr)
				}
			}
		}
	}
}

// decide classifies the candidate edge to→curr under the walk from root.
func (g *Graph) decide(root, to, curr string) action {
	if !g.Has(curr) || !slices.Contains(g.Calls(to), curr) {
		return actionSkip
	}
	if g.isLeaf(curr) {
		return actionSkip
	}
	leafy := true
	for _, n := range g.Calls(curr) {
		if !g.isLeaf(n) {
			leafy = false
			break
		}
	}
	if leafy {
		return actionSkip
	}

	_, currLinked := g.linked[Edge{From: root, To: curr}]
	_, toLinked := g.linked[Edge{From: root, To: to}]
	if currLinked && toLinked && g.Reaches(curr, to) {
		return actionCut
	}
	return actionDescend
}
