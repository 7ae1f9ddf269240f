// Package objdump runs the external disassembler that produces the listing
// the analyzer consumes.
package objdump

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"armra/internal/elfx"
)

// ErrToolNotFound reports a missing disassembler executable.
var ErrToolNotFound = errors.New("objdump: disassembler not found in PATH")

// Default cross disassemblers per word size.
const (
	Tool32 = "arm-linux-gnueabi-objdump"
	Tool64 = "aarch64-linux-gnu-objdump"
)

// DefaultTool returns the disassembler conventionally installed for arch.
func DefaultTool(arch elfx.Arch) string {
	if arch == elfx.Arch32 {
		return Tool32
	}
	return Tool64
}

// Run disassembles path with "tool -d" and returns the whole listing. The
// call blocks until the tool exits; its stderr is discarded.
func Run(tool, path string) (string, error) {
	exe, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %s (use --objdump to choose another)", ErrToolNotFound, tool)
	}
	var out bytes.Buffer
	cmd := exec.Command(exe, "-d", path)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("objdump: %s -d %s: %w", tool, path, err)
	}
	return out.String(), nil
}

// Load returns the listing stored at path by a previous run.
func Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("objdump: read listing: %w", err)
	}
	return string(b), nil
}

// ArchOf reads the word size from a listing's "file format" header line,
// e.g. "file format elf32-littlearm". ArchUnknown when absent.
func ArchOf(listing string) elfx.Arch {
	const marker = "file format elf"
	i := strings.Index(listing, marker)
	if i < 0 {
		return elfx.ArchUnknown
	}
	rest := listing[i+len(marker):]
	switch {
	case strings.HasPrefix(rest, "32"):
		return elfx.Arch32
	case strings.HasPrefix(rest, "64"):
		return elfx.Arch64
	}
	return elfx.ArchUnknown
}
