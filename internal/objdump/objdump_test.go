package objdump

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"armra/internal/elfx"
)

func TestArchOf(t *testing.T) {
	tests := []struct {
		listing string
		want    elfx.Arch
	}{
		{"\nprog:     file format elf64-littleaarch64\n", elfx.Arch64},
		{"\nprog:     file format elf32-littlearm\n", elfx.Arch32},
		{"\nprog:     file format elf32-bigarm\n", elfx.Arch32},
		{"0000 <main>:\n", elfx.ArchUnknown},
		{"prog: file format elfxx\n", elfx.ArchUnknown},
	}
	for _, tt := range tests {
		if got := ArchOf(tt.listing); got != tt.want {
			t.Errorf("ArchOf(%q) = %v, want %v", tt.listing, got, tt.want)
		}
	}
}

func TestDefaultTool(t *testing.T) {
	if DefaultTool(elfx.Arch32) != Tool32 {
		t.Error("32-bit tool")
	}
	if DefaultTool(elfx.Arch64) != Tool64 {
		t.Error("64-bit tool")
	}
}

func TestRunMissingTool(t *testing.T) {
	_, err := Run("armra-no-such-objdump", "prog.elf")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("err = %v, want ErrToolNotFound", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lst")
	if err := os.WriteFile(path, []byte("listing"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil || got != "listing" {
		t.Fatalf("Load = %q, %v", got, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error")
	}
}
