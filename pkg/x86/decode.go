package x86

import "encoding/binary"

// Decode decodes one instruction from the start of code. It reads at most
// min(len(code), 15) bytes and never reads past len(code). On success the
// returned record's Len is the number of bytes consumed (1..15).
//
// Parsing order:
// [prefixes] -> [0F?/map] -> [opcode] -> [ModR/M? -> SIB? -> disp?] -> [imm?]
func Decode(code []byte) (Inst, error) {
	var in Inst
	p := 0

	// need reports whether n more bytes can be consumed: truncation is
	// checked against the input, the 15-byte limit against the architecture.
	need := func(n int) error {
		if p+n > len(code) {
			return ErrTruncated
		}
		if p+n > MaxLen {
			return ErrTooLong
		}
		return nil
	}

	// Prefix phase. Legacy prefixes and REX bytes in any order; a REX is
	// only effective immediately before the opcode, so any legacy prefix
	// seen after it clears the pending REX.
	var pendingREX uint8
prefixes:
	for {
		if err := need(1); err != nil {
			return Inst{}, err
		}
		b := code[p]
		switch {
		case b == 0x66:
			in.Has66 = true
		case b == 0x67:
			in.Has67 = true
		case b == 0xF0:
			in.Lock = true
		case b == 0xF3:
			in.Rep = true
		case b == 0xF2:
			in.Repne = true
		case b == 0x2E || b == 0x36 || b == 0x3E || b == 0x26 || b == 0x64 || b == 0x65:
			in.SegOverride = true
		case b >= 0x40 && b <= 0x4F:
			pendingREX = b
			p++
			continue
		default:
			break prefixes
		}
		pendingREX = 0
		p++
	}
	in.REX = pendingREX
	if in.REX != 0 {
		in.RexB = in.REX&1 != 0
		in.RexX = in.REX&2 != 0
		in.RexR = in.REX&4 != 0
		in.RexW = in.REX&8 != 0
	}

	// Opcode-map phase. 0F escapes to the two-byte map; 0F 38 / 0F 3A to
	// the three-byte maps.
	in.Map = MapPrimary
	if code[p] == 0x0F {
		p++
		if err := need(1); err != nil {
			return Inst{}, err
		}
		switch code[p] {
		case 0x38:
			in.Map = Map0F38
			p++
		case 0x3A:
			in.Map = Map0F3A
			p++
		default:
			in.Map = Map0F
		}
		if err := need(1); err != nil {
			return Inst{}, err
		}
	}
	in.Op = code[p]
	p++

	// Effective sizes.
	switch {
	case in.RexW:
		in.OpSize = 64
	case in.Has66:
		in.OpSize = 16
	default:
		in.OpSize = 32
	}
	in.AddrSize = 64
	if in.Has67 {
		in.AddrSize = 32
	}

	d := Lookup(in.Map, in.Op)
	if d == nil || !d.Known {
		return Inst{}, ErrUnknownOpcode
	}
	in.Desc = d

	// ModR/M phase. The digit check runs against the raw reg field; REX.R
	// only extends reg when it names a register operand.
	if d.ModRM != ModRMNone {
		if err := need(1); err != nil {
			return Inst{}, err
		}
		in.HasModRM = true
		in.ModRM = code[p]
		p++
		in.Mod = in.ModRM >> 6
		in.Reg = (in.ModRM >> 3) & 7
		in.RM = in.ModRM & 7
		if d.ModRM == ModRMDigit && in.Reg != d.Digit {
			return Inst{}, ErrUnknownOpcode
		}
		if d.ModRM == ModRMReg && in.RexR {
			in.Reg |= 8
		}
		if in.RexB {
			in.RM |= 8
		}
	}

	// SIB phase: mod != 3 and r/m == 100b.
	if in.HasModRM && in.Mod != 3 && in.RM&7 == 4 {
		if err := need(1); err != nil {
			return Inst{}, err
		}
		in.HasSIB = true
		in.SIB = code[p]
		p++
		in.Scale = in.SIB >> 6
		in.Index = (in.SIB >> 3) & 7
		in.Base = in.SIB & 7
		if in.RexX {
			in.Index |= 8
		}
		if in.RexB {
			in.Base |= 8
		}
	}

	// Displacement size from mod, with the two mod=0 special cases:
	// rm=101b without SIB is RIP-relative disp32; SIB base=101b drops the
	// base register and takes disp32.
	if in.HasModRM {
		switch in.Mod {
		case 1:
			in.DispSize = 1
		case 2:
			in.DispSize = 4
		case 0:
			if !in.HasSIB && in.RM&7 == 5 {
				in.DispSize = 4
			} else if in.HasSIB && in.Base&7 == 5 {
				in.DispSize = 4
			}
		}
		if in.DispSize > 0 {
			if err := need(in.DispSize); err != nil {
				return Inst{}, err
			}
			if in.DispSize == 1 {
				in.Disp = int64(int8(code[p]))
			} else {
				in.Disp = int64(int32(binary.LittleEndian.Uint32(code[p:])))
			}
			p += in.DispSize
		}
	}

	// Immediate phase.
	in.ImmSize = immSize(d, in.Has66, in.RexW)
	if in.ImmSize > 0 {
		if err := need(in.ImmSize); err != nil {
			return Inst{}, err
		}
		var raw [8]byte
		copy(raw[:], code[p:p+in.ImmSize])
		in.Imm = binary.LittleEndian.Uint64(raw[:])
		p += in.ImmSize
	}

	in.Len = p
	return in, nil
}

// immSize computes the immediate width in bytes for a descriptor under the
// active prefixes. The first immediate or relative operand kind sets the
// width.
func immSize(d *Descriptor, has66, rexW bool) int {
	if d.FixedImm != 0 {
		return int(d.FixedImm)
	}
	for _, k := range d.Ops[:d.NOps] {
		switch k {
		case KindImm8, KindRel8:
			return 1
		case KindImm16:
			return 2
		case KindImm32, KindRel32:
			return 4
		case KindImm64:
			return 8
		case KindImmZ:
			// Iz never reaches 8 bytes: the 64-bit form sign-extends a
			// 4-byte immediate.
			if has66 && !rexW {
				return 2
			}
			return 4
		case KindImmV:
			// Iv: full operand size. This is the movabs path.
			if rexW {
				return 8
			}
			if has66 {
				return 2
			}
			return 4
		}
	}
	return 0
}
