package callgraph

import (
	"armra/internal/config"
	"armra/internal/disasm"
)

// Build scans a listing once and returns the resulting call graph.
// wordBytes is the target's general register width (4 or 8). log may be nil.
func Build(l *disasm.Listing, wordBytes int, log *config.LogGroup) *Graph {
	g := New()
	var cur *Function
	for i := 0; i < l.Len(); i++ {
		e := l.Entry(i)
		switch e.Kind {
		case disasm.EntryBreak:
			cur = nil
		case disasm.EntryLabel:
			cur = g.Add(disasm.CanonicalName(e.Label))
		case disasm.EntryInst:
			if cur == nil {
				continue
			}
			inst := disasm.Recover(e.Inst, wordBytes)
			cur.Ops = append(cur.Ops, inst.Mnemonic)
			switch {
			case isCallSite(inst, l):
				callee := disasm.CanonicalName(inst.Target)
				if cur.addCall(callee) {
					log.Tracef("edge %s -> %s (%s)", cur.Name, callee, inst.Mnemonic)
				}
			case disasm.ModifiesStack(inst.Mnemonic, inst.Operands):
				cur.FrameCost += disasm.Cost(inst.Mnemonic, inst.Operands, wordBytes)
			}
		}
	}
	log.Debugf("scanned %d lines, %d functions", l.Len(), g.Len())
	return g
}

// isCallSite reports whether inst transfers control to another function.
// Branches into the middle of a symbol are local jumps.
func isCallSite(inst disasm.Inst, l *disasm.Listing) bool {
	if inst.Target == "" || inst.Offset {
		return false
	}
	return disasm.IsCall(inst.Mnemonic) || disasm.IsTailCall(inst, l)
}
