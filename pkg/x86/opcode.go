package x86

// Kind classifies one operand slot in an opcode descriptor.
type Kind uint8

const (
	KindNone Kind = iota

	// Register and r/m operands. The unsuffixed and Z forms take their
	// width from the effective operand size; the numbered forms are fixed.
	KindReg
	KindRM
	KindReg8
	KindReg16
	KindReg32
	KindReg64
	KindRM8
	KindRM16
	KindRM32
	KindRM64
	KindRegZ
	KindRMZ

	// Fixed registers. KindEAX follows Intel's eAX/rAX map notation: the
	// accumulator at the effective operand size, not a hard-coded eax.
	KindAL
	KindAX
	KindEAX
	KindRAX

	// Immediates and relative branch displacements.
	KindImm8
	KindImm16
	KindImm32
	KindImm64
	// KindImmZ is the operand-size immediate capped at 32 bits (Iz):
	// 2 bytes under 66h, else 4, never 8. The 64-bit form sign-extends
	// the 4-byte immediate.
	KindImmZ
	// KindImmV is the full operand-size immediate (Iv): 2/4/8 by 66h and
	// REX.W. MOV r,imm (B8+rd) is the only user, and this is the only
	// path to a true 8-byte immediate.
	KindImmV
	KindRel8
	KindRel32
)

// ModRMKind says whether the opcode is followed by a ModR/M byte and how
// its reg field is interpreted.
type ModRMKind uint8

const (
	ModRMNone  ModRMKind = iota // no ModR/M byte
	ModRMReg                    // /r: reg names a register operand
	ModRMDigit                  // /0../7: reg is an opcode extension
)

// Descriptor is one immutable opcode-table entry. Entries not explicitly
// declared in tables.go have Known=false and fail decoding; a Stub entry is
// a known one-byte opcode with no official mnemonic (rendered "db 0xNN").
type Descriptor struct {
	Known    bool
	Stub     bool
	ModRM    ModRMKind
	Digit    uint8 // required reg value when ModRM == ModRMDigit
	Mnemonic string
	Ops      [4]Kind
	NOps     uint8
	FixedImm uint8 // immediate width override in bytes, 0 = derive from Ops
}

// Opcode map selectors.
const (
	MapPrimary uint8 = 1
	Map0F      uint8 = 0x0F
	Map0F38    uint8 = 0x38
	Map0F3A    uint8 = 0x3A
)

// Lookup returns the descriptor for an opcode in the given map, or nil for
// an unknown map selector.
func Lookup(m, op uint8) *Descriptor {
	switch m {
	case MapPrimary:
		return &primMap[op]
	case Map0F:
		return &map0F[op]
	case Map0F38:
		return &map0F38[op]
	case Map0F3A:
		return &map0F3A[op]
	}
	return nil
}

func insn(mnemonic string, modrm ModRMKind, ops ...Kind) Descriptor {
	d := Descriptor{Known: true, ModRM: modrm, Mnemonic: mnemonic, NOps: uint8(len(ops))}
	copy(d.Ops[:], ops)
	return d
}

func grp(mnemonic string, digit uint8, ops ...Kind) Descriptor {
	d := insn(mnemonic, ModRMDigit, ops...)
	d.Digit = digit
	return d
}

func stub() Descriptor {
	return Descriptor{Known: true, Stub: true}
}

// imm pins the immediate width regardless of operand size.
func (d Descriptor) imm(n uint8) Descriptor {
	d.FixedImm = n
	return d
}
