// Package disasm parses objdump listings of ARM and AArch64 code and
// classifies the instructions that matter for stack accounting.
package disasm

import (
	"regexp"
	"strconv"
	"strings"
)

// Inst is one instruction line of a listing.
type Inst struct {
	Line     int      // index into the listing's raw lines
	Addr     uint64   // 0 when the address column is not hex
	Mnemonic string   // lowercase, e.g. "sub", "bl"
	Operands []string // whitespace-separated operand tokens
	Target   string   // raw symbol between < and >, "" if none
	Offset   bool     // Target carries a +offset (intra-function reference)
}

// Text returns the operands joined back into one string.
func (i Inst) Text() string {
	return strings.Join(i.Operands, " ")
}

// EntryKind classifies a listing line.
type EntryKind int

const (
	EntrySkip  EntryKind = iota // ignored, scope unchanged
	EntryBreak                  // closes the current function scope
	EntryLabel                  // opens a function scope
	EntryInst                   // instruction inside a scope
)

// Entry is a classified listing line.
type Entry struct {
	Kind  EntryKind
	Label string // raw symbol for EntryLabel
	Inst  Inst   // for EntryInst
}

// Listing is a fully buffered disassembly.
type Listing struct {
	raw []string
}

// NewListing splits objdump output into lines.
func NewListing(text string) *Listing {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Listing{raw: strings.Split(text, "\n")}
}

// Len returns the number of raw lines.
func (l *Listing) Len() int { return len(l.raw) }

// Raw returns line i unmodified, or "" past the end.
func (l *Listing) Raw(i int) string {
	if i < 0 || i >= len(l.raw) {
		return ""
	}
	return l.raw[i]
}

// thumbWide matches the two-halfword encoding column of 32-bit Thumb
// instructions ("8002:\tf000 f801 \tbl ...").
var thumbWide = regexp.MustCompile(`:\t\w+\s\w+\s`)

// Normalize collapses whitespace and folds a two-halfword encoding column
// into one placeholder column so the mnemonic is always the third token.
func Normalize(line string) string {
	line = thumbWide.ReplaceAllString(line, " 0000 ")
	return strings.Join(strings.Fields(line), " ")
}

// Entry classifies line i.
func (l *Listing) Entry(i int) Entry {
	line := Normalize(l.Raw(i))
	switch {
	case line == "",
		strings.Contains(line, "Disassembly"),
		strings.Contains(line, ".word"),
		strings.Contains(line, "..."):
		return Entry{Kind: EntryBreak}
	case strings.Contains(line, ">:"):
		sym, _, ok := symbolRef(line)
		if !ok {
			return Entry{Kind: EntrySkip}
		}
		return Entry{Kind: EntryLabel, Label: sym}
	}

	toks := strings.Split(line, " ")
	if len(toks) < 3 {
		return Entry{Kind: EntrySkip}
	}
	inst := Inst{
		Line:     i,
		Mnemonic: strings.ToLower(toks[2]),
		Operands: stripComment(toks[3:]),
	}
	if a, err := strconv.ParseUint(strings.TrimSuffix(toks[0], ":"), 16, 64); err == nil {
		inst.Addr = a
	}
	if sym, off, ok := symbolRef(toks[len(toks)-1]); ok {
		inst.Target = sym
		inst.Offset = off
	}
	return Entry{Kind: EntryInst, Inst: inst}
}

// symbolRef extracts the symbol from "<sym>" or "<sym+0x10>".
func symbolRef(s string) (sym string, offset bool, ok bool) {
	lt := strings.IndexByte(s, '<')
	gt := strings.LastIndexByte(s, '>')
	if lt < 0 || gt <= lt+1 {
		return "", false, false
	}
	sym = s[lt+1 : gt]
	if k := strings.IndexByte(sym, '+'); k > 0 {
		return sym[:k], true, true
	}
	return sym, false, true
}

// stripComment drops everything from the first ';' or '//' token on.
func stripComment(toks []string) []string {
	for k, t := range toks {
		if strings.HasPrefix(t, ";") || strings.HasPrefix(t, "//") {
			return toks[:k]
		}
	}
	return toks
}

// CanonicalName normalizes a symbol into a DOT-safe identifier: separators
// become '_' and digits become 'x'.
func CanonicalName(sym string) string {
	var b strings.Builder
	b.Grow(len(sym))
	for _, c := range sym {
		switch {
		case c == ':' || c == '.' || c == '@' || c == '$' || c == '-':
			b.WriteByte('_')
		case c >= '0' && c <= '9':
			b.WriteByte('x')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
