package disasm

import (
	"strings"
	"testing"
)

func TestCost(t *testing.T) {
	tests := []struct {
		name string
		op   string
		ops  string
		word int
		want int
	}{
		{"push pair", "push", "{r7, lr}", 4, 8},
		{"push no spaces", "push", "{r0,r1}", 4, 8},
		{"push range", "push", "{r4-r7, lr}", 4, 20},
		{"push single", "push", "{r4}", 4, 4},
		{"vpush d range", "vpush", "{d8-d15}", 4, 64},
		{"vpush s", "vpush", "{s16, s17}", 4, 8},
		{"vpush q", "vpush", "{q4}", 4, 16},
		{"push immediate", "push", "#3", 8, 24},
		{"stp pre-decrement", "stp", "x29, x30, [sp, #-16]!", 8, 16},
		{"str pre-decrement hex", "str", "x19, [sp, #-0x20]!", 8, 32},
		{"sub sp", "sub", "sp, sp, #0x20", 8, 32},
		{"sub sp decimal", "sub", "sp, sp, #40", 4, 40},
		{"sub sp negative", "sub", "sp, sp, #-8", 4, 0},
		{"add sp negative", "add", "sp, sp, #-24", 4, 24},
		{"add sp positive", "add", "sp, sp, #0x20", 8, 0},
		{"sub sp lsl 12", "sub", "sp, sp, #0x1, lsl #12", 8, 4096},
		{"sub wsp", "sub", "wsp, wsp, #16", 8, 16},
		{"thumb sub packed", "sub", "sp,#16", 4, 16},
		{"thumb add packed", "add", "sp,#16", 4, 0},
		{"sub sp lsl packed", "sub", "sp,sp,#0x2,lsl#12", 8, 8192},
		{"sub reads sp", "sub", "x0, sp, #16", 8, 0},
		{"add frame pointer", "add", "r7, sp, #0", 4, 0},
		{"unrelated", "mov", "r0, r1", 4, 0},
		{"ldp post-increment", "ldp", "x29, x30, [sp], #16", 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cost(tt.op, strings.Fields(tt.ops), tt.word)
			if got != tt.want {
				t.Errorf("Cost(%s %s) = %d, want %d", tt.op, tt.ops, got, tt.want)
			}
		})
	}
}

func TestModifiesStack(t *testing.T) {
	tests := []struct {
		op   string
		ops  string
		want bool
	}{
		{"push", "{r4, lr}", true},
		{"vpush", "{d8}", true},
		{"sub", "sp, sp, #8", true},
		{"add", "sp, sp, #8", true},
		{"stp", "x29, x30, [sp, #-32]!", true},
		{"sub", "sp,#16", true},
		{"sub", "r0, r1, #8", false},
		{"sub", "x0, sp, #16", false},
		{"add", "x29, sp, #16", false},
		{"add", "sp, r7", false},
		{"mov", "x29, sp", false},
		{"ldr", "x0, [sp, #8]", false},
	}
	for _, tt := range tests {
		if got := ModifiesStack(tt.op, strings.Fields(tt.ops)); got != tt.want {
			t.Errorf("ModifiesStack(%s %s) = %v, want %v", tt.op, tt.ops, got, tt.want)
		}
	}
}

func TestIsTailCall(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		want    bool
	}{
		{"nop follows", "  10:\t14000002 \tb\t18 <g>\n  14:\td503201f \tnop\n  18:\td65f03c0 \tret", true},
		{"nop second", "  10:\t14000002 \tb\t18 <g>\n  14:\td65f03c0 \tret\n  18:\td503201f \tnop", true},
		{"blank follows", "  10:\t14000002 \tb\t18 <g>\n\n0000000000000018 <g>:", true},
		{"undefined follows", "  10:\t14000002 \tb\t18 <g>\n  14:\t00000000 \t.inst\t0x00000000 ; undefined\n  18:\td65f03c0 \tret", true},
		{"end of listing", "  10:\t14000002 \tb\t18 <g>", true},
		{"code follows", "  10:\t14000002 \tb\t18 <g>\n  14:\td65f03c0 \tret\n  18:\td65f03c0 \tret", false},
		{"thumb narrow", "    8012:\te005      \tb.n\t8020 <leaf2>\n    8014:\tbf00      \tnop", true},
		{"conditional", "  10:\t54000040 \tb.eq\t18 <g>\n  14:\td503201f \tnop", false},
		{"call", "  10:\t94000002 \tbl\t18 <g>\n  14:\td503201f \tnop", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewListing(tt.listing)
			e := l.Entry(0)
			if e.Kind != EntryInst {
				t.Fatalf("line 0 kind = %v", e.Kind)
			}
			if got := IsTailCall(e.Inst, l); got != tt.want {
				t.Errorf("IsTailCall = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBranchClasses(t *testing.T) {
	for _, op := range []string{"bl", "blx"} {
		if !IsCall(op) {
			t.Errorf("IsCall(%s) = false", op)
		}
	}
	for _, op := range []string{"b", "b.w", "bx", "blr"} {
		if IsCall(op) {
			t.Errorf("IsCall(%s) = true", op)
		}
	}
	for _, op := range []string{"b", "b.w", "b.n"} {
		if !IsUnconditionalBranch(op) {
			t.Errorf("IsUnconditionalBranch(%s) = false", op)
		}
	}
	for _, op := range []string{"b.eq", "bne", "bl", "cbz"} {
		if IsUnconditionalBranch(op) {
			t.Errorf("IsUnconditionalBranch(%s) = true", op)
		}
	}
}
