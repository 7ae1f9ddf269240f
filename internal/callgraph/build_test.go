package callgraph

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"armra/internal/disasm"
)

func loadListing(t *testing.T, name string) *disasm.Listing {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return disasm.NewListing(string(b))
}

func TestBuildAArch64(t *testing.T) {
	g := Build(loadListing(t, "prog64.lst"), 8, nil)

	want := []string{"_start", "main", "helper", "leaf"}
	var got []string
	for _, f := range g.Functions() {
		got = append(got, f.Name)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("functions = %v, want %v", got, want)
	}

	frames := map[string]int{"_start": 16, "main": 16, "helper": 32, "leaf": 16}
	for name, frame := range frames {
		if f := g.Lookup(name); f.FrameCost != frame {
			t.Errorf("%s frame = %d, want %d", name, f.FrameCost, frame)
		}
	}

	if calls := g.Calls("main"); !slices.Equal(calls, []string{"helper", "puts_plt"}) {
		t.Errorf("main calls = %v", calls)
	}
	// b followed by a nop is a tail call.
	if calls := g.Calls("helper"); !slices.Equal(calls, []string{"leaf"}) {
		t.Errorf("helper calls = %v", calls)
	}
	// b.eq into the function's own body is not an edge.
	if calls := g.Calls("leaf"); len(calls) != 0 {
		t.Errorf("leaf calls = %v", calls)
	}
	if ops := g.Lookup("main").Ops; !slices.Equal(ops, []string{"stp", "bl", "bl", "ldp", "ret"}) {
		t.Errorf("main ops = %v", ops)
	}
}

func TestBuildThumb(t *testing.T) {
	g := Build(loadListing(t, "thumb32.lst"), 4, nil)

	frames := map[string]int{"main": 16, "work": 20, "leaf2": 4, "isr": 16}
	for name, frame := range frames {
		f := g.Lookup(name)
		if f == nil {
			t.Fatalf("%s missing", name)
		}
		if f.FrameCost != frame {
			t.Errorf("%s frame = %d, want %d", name, f.FrameCost, frame)
		}
	}
	if calls := g.Calls("main"); !slices.Equal(calls, []string{"work"}) {
		t.Errorf("main calls = %v", calls)
	}
	if calls := g.Calls("work"); !slices.Equal(calls, []string{"leaf2"}) {
		t.Errorf("work calls = %v", calls)
	}
	// The .word directive closes main's scope.
	if n := len(g.Lookup("main").Ops); n != 5 {
		t.Errorf("main has %d ops, want 5", n)
	}
}

func TestBuildIgnoresLinesOutsideScope(t *testing.T) {
	l := disasm.NewListing("prog: file format elf64-littleaarch64\n" +
		"  400000:\td10043ff \tsub\tsp, sp, #0x10\n")
	g := Build(l, 8, nil)
	if g.Len() != 0 {
		t.Fatalf("got %d functions, want 0", g.Len())
	}
}

func TestBuildRecoversInst(t *testing.T) {
	l := disasm.NewListing("0000000000400000 <f>:\n" +
		"  400000:\td10043ff \t.inst\t0xd10043ff ; undefined\n" +
		"  400004:\td65f03c0 \tret\n")
	g := Build(l, 8, nil)
	if f := g.Lookup("f"); f == nil || f.FrameCost != 16 {
		t.Fatalf("f = %+v, want frame 16", f)
	}
}
