package callgraph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"armra/internal/disasm"
)

// ParseEdges reads "caller:callee" lines. Blank lines are skipped and names
// are canonicalized the same way as listing symbols.
func ParseEdges(r io.Reader) ([]Edge, error) {
	var edges []Edge
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		e, err := ParseEdge(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		edges = append(edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}
	return edges, nil
}

// ParseEdge parses a single "caller:callee" pair.
func ParseEdge(s string) (Edge, error) {
	from, to, ok := strings.Cut(s, ":")
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if !ok || from == "" || to == "" || strings.Contains(to, ":") {
		return Edge{}, fmt.Errorf("%w: %q", ErrMalformedEdge, s)
	}
	return Edge{From: disasm.CanonicalName(from), To: disasm.CanonicalName(to)}, nil
}

// InjectEdges adds user-declared edges for calls the disassembler could not
// resolve, such as branches through a register. Both ends must be defined.
// The edges are authoritative and bypass cycle handling; they must be
// injected before ResolveCycles runs.
func (g *Graph) InjectEdges(edges []Edge) error {
	for _, e := range edges {
		if !g.Has(e.From) {
			return fmt.Errorf("%w: %s", ErrUnknownFunction, e.From)
		}
		if !g.Has(e.To) {
			return fmt.Errorf("%w: %s", ErrUnknownFunction, e.To)
		}
		g.Link(e.From, e.To)
	}
	return nil
}
