package disasm

import (
	"strconv"
	"strings"
)

// IsCall reports whether op is a branch-with-link to a symbol.
func IsCall(op string) bool {
	return op == "bl" || op == "blx"
}

// IsUnconditionalBranch reports whether op is a plain branch, including the
// Thumb wide and narrow forms.
func IsUnconditionalBranch(op string) bool {
	return op == "b" || op == "b.w" || op == "b.n"
}

// IsNop reports whether a raw listing line is padding: empty, a nop, or an
// undefined encoding.
func IsNop(line string) bool {
	return strings.TrimSpace(line) == "" ||
		strings.Contains(line, "nop") ||
		strings.Contains(line, "; undefined")
}

// IsTailCall reports whether inst is an unconditional branch that the
// compiler emitted in place of a call-then-return. Compilers pad after a tail
// jump, so one of the next two listing lines is a nop.
func IsTailCall(inst Inst, l *Listing) bool {
	if !IsUnconditionalBranch(inst.Mnemonic) {
		return false
	}
	return IsNop(l.Raw(inst.Line+1)) || IsNop(l.Raw(inst.Line+2))
}

// operandText joins operand tokens without spaces: "[sp, #-16]!" → "[sp,#-16]!".
func operandText(ops []string) string {
	return strings.Join(ops, "")
}

// ModifiesStack reports whether the instruction grows or shrinks the frame.
func ModifiesStack(op string, ops []string) bool {
	s := operandText(ops)
	switch {
	case op == "push" || op == "vpush":
		return true
	case (op == "add" || op == "sub") && writesSP(ops) && strings.Contains(s, "#"):
		return true
	}
	return preDecrement(s) >= 0
}

// Cost returns the number of bytes the instruction adds to the stack frame.
// wordBytes is the general register width of the target (4 or 8).
func Cost(op string, ops []string, wordBytes int) int {
	s := operandText(ops)
	switch {
	case op == "push" || op == "vpush":
		if strings.Contains(s, "#") {
			return abs(immediate(s)) * wordBytes
		}
		return registerListBytes(s, wordBytes)
	case preDecrement(s) >= 0:
		return preDecrement(s)
	case (op == "add" || op == "sub") && writesSP(ops):
		list := operandList(ops)
		n := 0
		for k, t := range list {
			if strings.HasPrefix(t, "#") {
				n = immediate(t)
				if k+1 < len(list) && strings.HasPrefix(list[k+1], "lsl") {
					n <<= uint(immediate(list[k+1]))
				}
				break
			}
		}
		// Adding a positive or subtracting a negative amount releases
		// the frame; only growth is counted.
		if op == "add" && n > 0 || op == "sub" && n < 0 {
			return 0
		}
		return abs(n)
	}
	return 0
}

// operandList splits the operands on commas, so "sp, #16" and "sp,#16"
// both give [sp #16].
func operandList(ops []string) []string {
	return strings.Split(operandText(ops), ",")
}

// writesSP reports whether the destination operand is sp (or wsp). An add
// or sub that only reads sp, such as "sub x0, sp, #16", leaves the frame
// alone.
func writesSP(ops []string) bool {
	dst := strings.TrimSpace(operandList(ops)[0])
	return dst == "sp" || dst == "wsp"
}

// preDecrement returns N for a "[sp,#-N]!" write-back, or -1.
func preDecrement(s string) int {
	i := strings.Index(s, "[sp,#-")
	if i < 0 {
		return -1
	}
	rest := s[i+len("[sp,#-"):]
	j := strings.Index(rest, "]!")
	if j < 0 {
		return -1
	}
	n, err := strconv.ParseInt(rest[:j], 0, 64)
	if err != nil {
		return -1
	}
	return int(n)
}

// immediate parses the first "#imm" in s. Decimal and 0x-prefixed hex are
// accepted; a malformed immediate counts as zero.
func immediate(s string) int {
	i := strings.IndexByte(s, '#')
	if i < 0 {
		return 0
	}
	s = s[i+1:]
	end := len(s)
	for k, c := range s {
		if c == ',' || c == ']' || c == '}' || c == ' ' || c == '!' {
			end = k
			break
		}
	}
	n, err := strconv.ParseInt(s[:end], 0, 64)
	if err != nil {
		return 0
	}
	return int(n)
}

// registerListBytes sizes a "{r4,r5-r7,lr}" list. VFP registers have fixed
// widths (q 16, d 8, s 4) regardless of the core register width.
func registerListBytes(s string, wordBytes int) int {
	s = strings.Trim(s, "{}")
	if s == "" {
		return 0
	}
	total := 0
	for _, reg := range strings.Split(s, ",") {
		reg = strings.Trim(reg, "{} ")
		if reg == "" {
			continue
		}
		count := 1
		if lo, hi, ok := strings.Cut(reg, "-"); ok {
			a, errA := regIndex(lo)
			b, errB := regIndex(hi)
			if errA == nil && errB == nil && b >= a {
				count = b - a + 1
			}
		}
		width := wordBytes
		switch reg[0] {
		case 'd':
			width = 8
		case 'q':
			width = 16
		case 's':
			if reg != "sp" {
				width = 4
			}
		}
		total += count * width
	}
	return total
}

// regIndex parses the numeric part of "r7" or "d15".
func regIndex(reg string) (int, error) {
	return strconv.Atoi(strings.TrimLeft(reg, "rdsq"))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
