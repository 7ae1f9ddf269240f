package disasm

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  400000:\td10043ff \tsub\tsp, sp, #0x10", "400000: d10043ff sub sp, sp, #0x10"},
		{"    8002:\tf000 f801 \tbl\t8008 <work>", "8002 0000 bl 8008 <work>"},
		{"    8000:\tb580      \tpush\t{r7, lr}", "8000: b580 push {r7, lr}"},
		{"   \t  ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEntryKinds(t *testing.T) {
	l := NewListing("Disassembly of section .text:\r\n" +
		"0000000000400000 <main>:\n" +
		"  400000:\ta9bf7bfd \tstp\tx29, x30, [sp, #-16]!\n" +
		"  400004:\t94000010 \tbl\t400044 <puts@plt>\n" +
		"  400008:\t54000040 \tb.eq\t400010 <main+0x10>\n" +
		"  40000c:\t00000000 \t.word\t0x00000000\n" +
		"\t...\n")

	want := []EntryKind{EntryBreak, EntryLabel, EntryInst, EntryInst, EntryInst, EntryBreak, EntryBreak, EntryBreak}
	if l.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", l.Len(), len(want))
	}
	for i, k := range want {
		if got := l.Entry(i).Kind; got != k {
			t.Errorf("line %d kind = %v, want %v", i, got, k)
		}
	}

	if e := l.Entry(1); e.Label != "main" {
		t.Errorf("label = %q, want main", e.Label)
	}

	stp := l.Entry(2).Inst
	if stp.Addr != 0x400000 || stp.Mnemonic != "stp" || stp.Line != 2 {
		t.Errorf("stp = %+v", stp)
	}
	if !slices.Equal(stp.Operands, []string{"x29,", "x30,", "[sp,", "#-16]!"}) {
		t.Errorf("operands = %q", stp.Operands)
	}

	call := l.Entry(3).Inst
	if call.Target != "puts@plt" || call.Offset {
		t.Errorf("call target = %q offset %v", call.Target, call.Offset)
	}

	local := l.Entry(4).Inst
	if local.Target != "main" || !local.Offset {
		t.Errorf("local target = %q offset %v", local.Target, local.Offset)
	}
}

func TestEntryStripsComment(t *testing.T) {
	l := NewListing("  400000:\tf9400be0 \tldr\tx0, [sp, #16] ; load\n" +
		"  400004:\tb0000080 \tadrp\tx0, 411000 // page")
	if ops := l.Entry(0).Inst.Operands; !slices.Equal(ops, []string{"x0,", "[sp,", "#16]"}) {
		t.Errorf("operands = %q", ops)
	}
	if ops := l.Entry(1).Inst.Operands; !slices.Equal(ops, []string{"x0,", "411000"}) {
		t.Errorf("operands = %q", ops)
	}
}

func TestRawPastEnd(t *testing.T) {
	l := NewListing("one")
	if l.Raw(1) != "" || l.Raw(-1) != "" {
		t.Error("Raw out of range should be empty")
	}
	if l.Entry(5).Kind != EntryBreak {
		t.Error("line past the end should close the scope")
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"main", "main"},
		{"puts@plt", "puts_plt"},
		{"foo.part.0", "foo_part_x"},
		{"$x", "_x"},
		{"a:b-c", "a_b_c"},
		{"crc32", "crcxx"},
		{"_Z3fooi", "_Zxfooi"},
	}
	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
