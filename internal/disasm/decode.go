package disasm

import (
	"encoding/binary"
	"strconv"
	"strings"

	"golang.org/x/arch/arm/armasm"
	"golang.org/x/arch/arm64/arm64asm"
)

// Recover fills in the mnemonic and operands of an ".inst 0x..." line, which
// objdump emits for encodings it does not know. The raw word is decoded with
// x/arch in GNU syntax; wordBytes selects AArch64 (8) or ARM (4). The
// instruction is returned unchanged when it is not an .inst or does not
// decode.
func Recover(inst Inst, wordBytes int) Inst {
	if inst.Mnemonic != ".inst" || len(inst.Operands) == 0 {
		return inst
	}
	raw, err := strconv.ParseUint(strings.TrimSuffix(inst.Operands[0], ","), 0, 32)
	if err != nil {
		return inst
	}
	text := DisasmOne(uint32(raw), wordBytes)
	if text == "" {
		return inst
	}
	mnemonic, operands, _ := strings.Cut(text, " ")
	inst.Mnemonic = strings.ToLower(mnemonic)
	inst.Operands = strings.Fields(operands)
	return inst
}

// DisasmOne decodes a single little-endian instruction word in GNU syntax.
// Returns "" if decoding fails.
func DisasmOne(raw uint32, wordBytes int) string {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, raw)
	if wordBytes == 8 {
		inst, err := arm64asm.Decode(buf)
		if err != nil {
			return ""
		}
		return arm64asm.GNUSyntax(inst)
	}
	inst, err := armasm.Decode(buf, armasm.ModeARM)
	if err != nil {
		return ""
	}
	return armasm.GNUSyntax(inst)
}
