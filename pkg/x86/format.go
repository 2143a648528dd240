package x86

import (
	"fmt"
	"strings"
)

// Register name banks, indexed by the REX-extended register number.
var reg8NoREX = [16]string{
	"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh",
	"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b",
}
var reg8REX = [16]string{
	"al", "cl", "dl", "bl", "spl", "bpl", "sil", "dil",
	"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b",
}
var reg16 = [16]string{
	"ax", "cx", "dx", "bx", "sp", "bp", "si", "di",
	"r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w",
}
var reg32 = [16]string{
	"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi",
	"r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d",
}
var reg64 = [16]string{
	"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

// RegName returns the textual name of a register at the given width. The
// 8-bit bank switches on REX presence: with any REX byte indices 4-7 are
// spl/bpl/sil/dil, without one they are ah/ch/dh/bh.
func RegName(idx uint8, width int, rexPresent bool) string {
	switch width {
	case 8:
		if rexPresent {
			return reg8REX[idx&15]
		}
		return reg8NoREX[idx&15]
	case 16:
		return reg16[idx&15]
	case 32:
		return reg32[idx&15]
	case 64:
		return reg64[idx&15]
	}
	return "??"
}

// Format renders the instruction body (mnemonic and operands) in Intel
// syntax: destination first. rip is the virtual address of the instruction;
// relative branch targets resolve against rip+Len.
func (in *Inst) Format(rip uint64) string {
	d := in.Desc
	if d.Stub || d.Mnemonic == "" {
		return fmt.Sprintf("db 0x%02x", in.Op)
	}

	var b strings.Builder
	if in.Lock {
		b.WriteString("lock ")
	}
	// F3 selects ENDBR rather than acting as a rep.
	isEndbr := in.Map == Map0F && in.Op == 0x1E
	if in.Repne && !isEndbr {
		b.WriteString("repne ")
	}
	if in.Rep && !isEndbr {
		b.WriteString("rep ")
	}
	b.WriteString(d.Mnemonic)
	for i := 0; i < int(d.NOps); i++ {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(in.operand(d.Ops[i], rip))
	}
	return b.String()
}

// FormatLine renders a full listing line: 16-digit address, up to 8 raw
// bytes padded to a fixed column, then the instruction body. raw must hold
// the instruction's bytes.
func (in *Inst) FormatLine(raw []byte, rip uint64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%016x:  ", rip)
	n := in.Len
	if n > len(raw) {
		n = len(raw)
	}
	shown := n
	if shown > 8 {
		shown = 8
	}
	for i := 0; i < shown; i++ {
		fmt.Fprintf(&b, "%02x ", raw[i])
	}
	for i := shown; i < 8; i++ {
		b.WriteString("   ")
	}
	b.WriteByte(' ')
	b.WriteString(in.Format(rip))
	return b.String()
}

// kindWidth maps an operand kind to its register width, defaulting to the
// effective operand size for the Z and unsuffixed forms.
func kindWidth(k Kind, z int) int {
	switch k {
	case KindReg8, KindRM8:
		return 8
	case KindReg16, KindRM16:
		return 16
	case KindReg32, KindRM32:
		return 32
	case KindReg64, KindRM64:
		return 64
	}
	return z
}

func (in *Inst) operand(k Kind, rip uint64) string {
	rex := in.REX != 0
	switch k {
	case KindReg, KindReg8, KindReg16, KindReg32, KindReg64, KindRegZ:
		w := kindWidth(k, in.OpSize)
		var idx uint8
		if in.HasModRM {
			idx = in.Reg
		} else {
			// opcode+rd form: register in the low 3 bits of the opcode.
			idx = in.Op & 7
			if in.RexB {
				idx |= 8
			}
			// push/pop default to 64-bit in long mode even though the
			// computed operand size is 32.
			if w == in.OpSize && in.Map == MapPrimary &&
				(in.Op&0xF8 == 0x50 || in.Op&0xF8 == 0x58) {
				w = 64
			}
		}
		return RegName(idx, w, rex)

	case KindRM, KindRM8, KindRM16, KindRM32, KindRM64, KindRMZ:
		w := kindWidth(k, in.OpSize)
		if in.Mod == 3 {
			// pop r/m (8F /0) defaults to 64-bit in long mode as well.
			if w == 32 && in.Map == MapPrimary && in.Op == 0x8F {
				w = 64
			}
			return RegName(in.RM, w, rex)
		}
		return in.memOperand()

	case KindAL:
		return "al"
	case KindAX:
		return "ax"
	case KindEAX:
		// eAX/rAX: the accumulator at the effective operand size.
		return RegName(0, in.OpSize, rex)
	case KindRAX:
		return "rax"

	case KindImm8:
		v := in.Imm & 0xFF
		if in.Desc.FixedImm == 3 {
			// enter iw, ib: the byte operand follows the word.
			v = (in.Imm >> 16) & 0xFF
		}
		return fmt.Sprintf("0x%02x", v)
	case KindImm16:
		return fmt.Sprintf("0x%04x", in.Imm&0xFFFF)
	case KindImm32:
		return fmt.Sprintf("0x%08x", in.Imm&0xFFFFFFFF)
	case KindImm64:
		return fmt.Sprintf("0x%016x", in.Imm)
	case KindImmZ, KindImmV:
		return fmt.Sprintf("0x%0*x", in.ImmSize*2, in.Imm)

	case KindRel8:
		return in.relTarget(int64(int8(in.Imm)), rip)
	case KindRel32:
		return in.relTarget(int64(int32(in.Imm)), rip)
	}
	return "<?>"
}

// relTarget resolves a branch displacement against the next instruction's
// address.
func (in *Inst) relTarget(disp int64, rip uint64) string {
	return fmt.Sprintf("0x%x", rip+uint64(in.Len)+uint64(disp))
}

// memOperand renders the effective-address expression of the r/m operand.
// Address registers take the effective address size (32 under 67h).
func (in *Inst) memOperand() string {
	aw := in.AddrSize
	rex := in.REX != 0

	// RIP-relative: mod=0, rm=101b, no SIB, in 64-bit addressing.
	if !in.HasSIB && in.Mod == 0 && in.RM&7 == 5 && aw == 64 {
		if in.DispSize == 0 || in.Disp == 0 {
			return "[rip]"
		}
		return fmt.Sprintf("[rip%+d]", in.Disp)
	}

	if in.HasSIB {
		scale := 1 << in.Scale
		// Base drops out when mod=0 and base=101b; index field 4 means no
		// index, and REX.X does not promote that special encoding.
		haveBase := !(in.Mod == 0 && in.Base&7 == 5)
		haveIndex := in.Index&7 != 4

		switch {
		case haveBase && haveIndex:
			base := RegName(in.Base, aw, rex)
			index := RegName(in.Index, aw, rex)
			if in.DispSize == 0 || in.Disp == 0 {
				return fmt.Sprintf("[%s+%s*%d]", base, index, scale)
			}
			return fmt.Sprintf("[%s+%s*%d%+d]", base, index, scale, in.Disp)
		case haveBase:
			base := RegName(in.Base, aw, rex)
			if in.DispSize == 0 {
				return fmt.Sprintf("[%s]", base)
			}
			return fmt.Sprintf("[%s%+d]", base, in.Disp)
		case haveIndex:
			index := RegName(in.Index, aw, rex)
			if in.DispSize == 0 || in.Disp == 0 {
				return fmt.Sprintf("[%s*%d]", index, scale)
			}
			return fmt.Sprintf("[%s*%d%+d]", index, scale, in.Disp)
		default:
			return fmt.Sprintf("[%d]", in.Disp)
		}
	}

	// Plain [rm+disp].
	base := RegName(in.RM, aw, rex)
	if in.DispSize == 0 {
		return fmt.Sprintf("[%s]", base)
	}
	return fmt.Sprintf("[%s%+d]", base, in.Disp)
}
