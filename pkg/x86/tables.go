package x86

// The four opcode maps, indexed by the opcode byte within the map. Entries
// never written here keep the zero Descriptor (Known=false) and decode as
// ErrUnknownOpcode. VEX/EVEX-prefixed encodings (C4/C5/62 in long mode) are
// deliberately absent.
var (
	primMap [256]Descriptor
	map0F   [256]Descriptor
	map0F38 [256]Descriptor // SSSE3/SSE4 territory: all unknown
	map0F3A [256]Descriptor // SSE4 imm8 territory: all unknown
)

// Condition-code suffixes in encoding order (tttn field).
var ccNames = [16]string{
	"o", "no", "b", "ae", "e", "ne", "be", "a",
	"s", "ns", "p", "np", "l", "ge", "le", "g",
}

func init() {
	// 00-3D: the eight ALU groups share one six-form layout.
	alu := []struct {
		base uint8
		mn   string
	}{
		{0x00, "add"}, {0x08, "or"}, {0x10, "adc"}, {0x18, "sbb"},
		{0x20, "and"}, {0x28, "sub"}, {0x30, "xor"}, {0x38, "cmp"},
	}
	for _, g := range alu {
		primMap[g.base+0] = insn(g.mn, ModRMReg, KindRM8, KindReg8)
		primMap[g.base+1] = insn(g.mn, ModRMReg, KindRMZ, KindRegZ)
		primMap[g.base+2] = insn(g.mn, ModRMReg, KindReg8, KindRM8)
		primMap[g.base+3] = insn(g.mn, ModRMReg, KindRegZ, KindRMZ)
		primMap[g.base+4] = insn(g.mn, ModRMNone, KindAL, KindImm8)
		primMap[g.base+5] = insn(g.mn, ModRMNone, KindEAX, KindImmZ)
	}

	// 50-5F: push/pop r64 (opcode+rd). The formatter forces 64-bit names
	// in long mode even though the computed operand size is 32.
	for i := uint8(0); i < 8; i++ {
		primMap[0x50+i] = insn("push", ModRMNone, KindRegZ)
		primMap[0x58+i] = insn("pop", ModRMNone, KindRegZ)
	}

	primMap[0x63] = insn("movsxd", ModRMReg, KindRegZ, KindRM32)
	primMap[0x68] = insn("push", ModRMNone, KindImmZ)
	primMap[0x69] = insn("imul", ModRMReg, KindRegZ, KindRMZ, KindImmZ)
	primMap[0x6A] = insn("push", ModRMNone, KindImm8)
	primMap[0x6B] = insn("imul", ModRMReg, KindRegZ, KindRMZ, KindImm8)

	// 70-7F: Jcc rel8.
	for i, cc := range ccNames {
		primMap[0x70+i] = insn("j"+cc, ModRMNone, KindRel8)
	}

	// Immediate-arithmetic groups. Single-digit entries: digit 0 is add,
	// any other reg extension is rejected as an unknown opcode.
	primMap[0x80] = grp("add", 0, KindRM8, KindImm8)
	primMap[0x81] = grp("add", 0, KindRMZ, KindImmZ)
	primMap[0x83] = grp("add", 0, KindRMZ, KindImm8)

	primMap[0x84] = insn("test", ModRMReg, KindRM8, KindReg8)
	primMap[0x85] = insn("test", ModRMReg, KindRMZ, KindRegZ)
	primMap[0x86] = insn("xchg", ModRMReg, KindRM8, KindReg8)
	primMap[0x87] = insn("xchg", ModRMReg, KindRMZ, KindRegZ)
	primMap[0x88] = insn("mov", ModRMReg, KindRM8, KindReg8)
	primMap[0x89] = insn("mov", ModRMReg, KindRMZ, KindRegZ)
	primMap[0x8A] = insn("mov", ModRMReg, KindReg8, KindRM8)
	primMap[0x8B] = insn("mov", ModRMReg, KindRegZ, KindRMZ)
	primMap[0x8D] = insn("lea", ModRMReg, KindRegZ, KindRMZ)
	primMap[0x8F] = grp("pop", 0, KindRMZ)

	primMap[0x90] = insn("nop", ModRMNone)
	for i := uint8(1); i < 8; i++ {
		primMap[0x90+i] = insn("xchg", ModRMNone, KindRegZ, KindEAX)
	}
	primMap[0x98] = insn("cwde", ModRMNone)
	primMap[0x99] = insn("cdq", ModRMNone)
	primMap[0x9C] = insn("pushfq", ModRMNone)
	primMap[0x9D] = insn("popfq", ModRMNone)
	primMap[0x9E] = insn("sahf", ModRMNone)
	primMap[0x9F] = insn("lahf", ModRMNone)

	primMap[0xA8] = insn("test", ModRMNone, KindAL, KindImm8)
	primMap[0xA9] = insn("test", ModRMNone, KindEAX, KindImmZ)

	// B0-BF: MOV r, imm (opcode+rd). B8+rd carries the full operand-size
	// immediate: the movabs form under REX.W.
	for i := uint8(0); i < 8; i++ {
		primMap[0xB0+i] = insn("mov", ModRMNone, KindReg8, KindImm8)
		primMap[0xB8+i] = insn("mov", ModRMNone, KindRegZ, KindImmV)
	}

	// Shift groups, digit 0 = rol. D0-D3 shift by an implicit 1 or cl.
	primMap[0xC0] = grp("rol", 0, KindRM8, KindImm8)
	primMap[0xC1] = grp("rol", 0, KindRMZ, KindImm8)
	primMap[0xC2] = insn("ret", ModRMNone, KindImm16)
	primMap[0xC3] = insn("ret", ModRMNone)
	primMap[0xC6] = grp("mov", 0, KindRM8, KindImm8)
	primMap[0xC7] = grp("mov", 0, KindRMZ, KindImmZ)
	// enter iw, ib: 2-byte frame size then 1-byte nesting level.
	primMap[0xC8] = insn("enter", ModRMNone, KindImm16, KindImm8).imm(3)
	primMap[0xC9] = insn("leave", ModRMNone)
	primMap[0xCC] = insn("int3", ModRMNone)
	primMap[0xCD] = insn("int", ModRMNone, KindImm8)

	primMap[0xD0] = grp("rol", 0, KindRM8)
	primMap[0xD1] = grp("rol", 0, KindRMZ)
	primMap[0xD2] = grp("rol", 0, KindRM8)
	primMap[0xD3] = grp("rol", 0, KindRMZ)
	primMap[0xD6] = stub() // SALC: undocumented, no official mnemonic

	primMap[0xE0] = insn("loopne", ModRMNone, KindRel8)
	primMap[0xE1] = insn("loope", ModRMNone, KindRel8)
	primMap[0xE2] = insn("loop", ModRMNone, KindRel8)
	primMap[0xE3] = insn("jrcxz", ModRMNone, KindRel8)
	primMap[0xE8] = insn("call", ModRMNone, KindRel32)
	primMap[0xE9] = insn("jmp", ModRMNone, KindRel32)
	primMap[0xEB] = insn("jmp", ModRMNone, KindRel8)

	primMap[0xF1] = stub() // ICEBP
	primMap[0xF4] = insn("hlt", ModRMNone)
	primMap[0xF5] = insn("cmc", ModRMNone)
	primMap[0xF6] = grp("test", 0, KindRM8, KindImm8)
	primMap[0xF7] = grp("test", 0, KindRMZ, KindImmZ)
	primMap[0xF8] = insn("clc", ModRMNone)
	primMap[0xF9] = insn("stc", ModRMNone)
	primMap[0xFA] = insn("cli", ModRMNone)
	primMap[0xFB] = insn("sti", ModRMNone)
	primMap[0xFC] = insn("cld", ModRMNone)
	primMap[0xFD] = insn("std", ModRMNone)
	primMap[0xFE] = grp("inc", 0, KindRM8)
	primMap[0xFF] = grp("inc", 0, KindRMZ)

	// 0F map.
	map0F[0x05] = insn("syscall", ModRMNone)
	map0F[0x0B] = insn("ud2", ModRMNone)
	// F3 0F 1E /7 is ENDBR; the F3 selects the instruction, it is not a
	// rep, and the formatter knows to drop it.
	map0F[0x1E] = grp("endbr64", 7)
	map0F[0x1F] = grp("nop", 0, KindRMZ) // multi-byte NOP
	map0F[0x31] = insn("rdtsc", ModRMNone)
	for i, cc := range ccNames {
		map0F[0x40+i] = insn("cmov"+cc, ModRMReg, KindRegZ, KindRMZ)
		map0F[0x80+i] = insn("j"+cc, ModRMNone, KindRel32)
		map0F[0x90+i] = insn("set"+cc, ModRMReg, KindRM8)
	}
	map0F[0xA2] = insn("cpuid", ModRMNone)
	map0F[0xA3] = insn("bt", ModRMReg, KindRMZ, KindRegZ)
	map0F[0xA4] = insn("shld", ModRMReg, KindRMZ, KindRegZ, KindImm8)
	map0F[0xA5] = insn("shld", ModRMReg, KindRMZ, KindRegZ)
	map0F[0xAB] = insn("bts", ModRMReg, KindRMZ, KindRegZ)
	map0F[0xAC] = insn("shrd", ModRMReg, KindRMZ, KindRegZ, KindImm8)
	map0F[0xAD] = insn("shrd", ModRMReg, KindRMZ, KindRegZ)
	map0F[0xAF] = insn("imul", ModRMReg, KindRegZ, KindRMZ)
	map0F[0xB0] = insn("cmpxchg", ModRMReg, KindRM8, KindReg8)
	map0F[0xB1] = insn("cmpxchg", ModRMReg, KindRMZ, KindRegZ)
	map0F[0xC0] = insn("xadd", ModRMReg, KindRM8, KindReg8)
	map0F[0xC1] = insn("xadd", ModRMReg, KindRMZ, KindRegZ)
	map0F[0xB3] = insn("btr", ModRMReg, KindRMZ, KindRegZ)
	map0F[0xB6] = insn("movzx", ModRMReg, KindRegZ, KindRM8)
	map0F[0xB7] = insn("movzx", ModRMReg, KindRegZ, KindRM16)
	map0F[0xBA] = grp("bt", 4, KindRMZ, KindImm8)
	map0F[0xBB] = insn("btc", ModRMReg, KindRMZ, KindRegZ)
	map0F[0xBC] = insn("bsf", ModRMReg, KindRegZ, KindRMZ)
	map0F[0xBD] = insn("bsr", ModRMReg, KindRegZ, KindRMZ)
	map0F[0xBE] = insn("movsx", ModRMReg, KindRegZ, KindRM8)
	map0F[0xBF] = insn("movsx", ModRMReg, KindRegZ, KindRM16)
	for i := uint8(0); i < 8; i++ {
		map0F[0xC8+i] = insn("bswap", ModRMNone, KindRegZ)
	}
}
