// Package elfx identifies the architecture of an ARM or AArch64 ELF file.
package elfx

import (
	"debug/elf"
	"errors"
	"fmt"
	"os"
)

var (
	ErrNotELF       = errors.New("elfx: not an ELF file")
	ErrNotARM       = errors.New("elfx: not an ARM or AArch64 binary")
	ErrUnknownArch  = errors.New("elfx: unknown ELF file architecture")
	ErrArchMismatch = errors.New("elfx: ELF class does not match machine")
)

// Arch is the target word size.
type Arch int

const (
	ArchUnknown Arch = 0
	Arch32      Arch = 32
	Arch64      Arch = 64
)

// WordBytes returns the general register width in bytes.
func (a Arch) WordBytes() int {
	if a == Arch64 {
		return 8
	}
	return 4
}

func (a Arch) String() string {
	switch a {
	case Arch32:
		return "32-bit"
	case Arch64:
		return "64-bit"
	}
	return "unknown"
}

// ParseArch converts a bit width (32 or 64) into an Arch.
func ParseArch(bits int) (Arch, error) {
	switch bits {
	case 32:
		return Arch32, nil
	case 64:
		return Arch64, nil
	}
	return ArchUnknown, fmt.Errorf("%w: %d-bit", ErrUnknownArch, bits)
}

// Info describes an opened binary.
type Info struct {
	Path    string
	Arch    Arch
	Machine elf.Machine
	Type    elf.Type
}

// Probe opens path and reports its architecture. Only EM_ARM (32-bit) and
// EM_AARCH64 (64-bit) are accepted.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("elfx: open: %w", err)
	}
	defer f.Close()

	ef, err := elf.NewFile(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotELF, err)
	}
	defer ef.Close()

	info := &Info{Path: path, Machine: ef.Machine, Type: ef.Type}
	switch ef.Class {
	case elf.ELFCLASS32:
		info.Arch = Arch32
	case elf.ELFCLASS64:
		info.Arch = Arch64
	default:
		return nil, fmt.Errorf("%w: class %v", ErrUnknownArch, ef.Class)
	}

	switch ef.Machine {
	case elf.EM_ARM:
		if info.Arch != Arch32 {
			return nil, fmt.Errorf("%w: %v %v", ErrArchMismatch, ef.Machine, ef.Class)
		}
	case elf.EM_AARCH64:
		if info.Arch != Arch64 {
			return nil, fmt.Errorf("%w: %v %v", ErrArchMismatch, ef.Machine, ef.Class)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrNotARM, ef.Machine)
	}
	return info, nil
}
