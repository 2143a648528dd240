package x86

// MaxLen is the architectural limit on one instruction's encoding.
const MaxLen = 15

// Inst is one decoded instruction. It is created empty at the start of each
// Decode call, fully populated on success, and owned by the caller. Desc
// points into the static opcode tables.
type Inst struct {
	// Prefixes
	Has66       bool // operand-size override
	Has67       bool // address-size override
	Lock        bool
	Rep         bool
	Repne       bool
	SegOverride bool

	// REX: raw byte (0 if absent) and decomposed bits. Only a REX that
	// immediately precedes the opcode is effective.
	REX  uint8
	RexW bool
	RexR bool
	RexX bool
	RexB bool

	// Opcode
	Map  uint8 // MapPrimary, Map0F, Map0F38, Map0F3A
	Op   uint8
	Desc *Descriptor

	// ModR/M
	HasModRM bool
	ModRM    uint8
	Mod      uint8 // 0..3
	Reg      uint8 // 0..15 after REX.R (left unextended for digit groups)
	RM       uint8 // 0..15 after REX.B

	// SIB
	HasSIB bool
	SIB    uint8
	Scale  uint8 // 0..3, meaning 1<<Scale
	Index  uint8 // 0..15 after REX.X; (Index & 7) == 4 means no index
	Base   uint8 // 0..15 after REX.B

	// Displacement / immediate
	DispSize int    // 0/1/4
	Disp     int64  // sign-extended
	ImmSize  int    // 0/1/2/4/8
	Imm      uint64 // raw little-endian load, high bytes zero

	// Effective sizes
	OpSize   int // 16/32/64
	AddrSize int // 32/64

	Len int // total bytes consumed
}
