package x86

import (
	"strings"
	"testing"
)

func decodeOrFatal(t *testing.T, code []byte) Inst {
	t.Helper()
	in, err := Decode(code)
	if err != nil {
		t.Fatalf("decode %x: %v", code, err)
	}
	return in
}

func TestFormatScenarios(t *testing.T) {
	tests := []struct {
		code []byte
		rip  uint64
		want string
	}{
		{[]byte{0xC3}, 0x1000, "ret"},
		{[]byte{0x48, 0x89, 0xE5}, 0x1000, "mov rbp, rsp"},
		{[]byte{0x55}, 0x1000, "push rbp"},
		{[]byte{0x48, 0x8B, 0x05, 0x11, 0x22, 0x33, 0x44}, 0x1000, "mov rax, [rip+1144201745]"},
		{[]byte{0x48, 0x89, 0x44, 0x24, 0x08}, 0x1000, "mov [rsp+8], rax"},
		{[]byte{0x0F, 0x1F, 0x40, 0x00}, 0x1000, "nop [rax+0]"},
		{[]byte{0x41, 0xB8, 0x2A, 0x00, 0x00, 0x00}, 0x1000, "mov r8d, 0x0000002a"},
		{[]byte{0x66, 0x83, 0xC0, 0x01}, 0x1000, "add ax, 0x01"},
		{[]byte{0xF0, 0xF0, 0xF0, 0xC3}, 0x1000, "lock ret"},
		{[]byte{0x48, 0xB8, 0xEF, 0xBE, 0xAD, 0xDE, 0x00, 0x00, 0x00, 0x00}, 0x1000, "mov rax, 0x00000000deadbeef"},
		{[]byte{0x5D}, 0x1000, "pop rbp"},
		{[]byte{0x41, 0x54}, 0x1000, "push r12"},
		{[]byte{0x90}, 0x1000, "nop"},
		{[]byte{0x0F, 0x05}, 0x1000, "syscall"},
		{[]byte{0xC9}, 0x1000, "leave"},
		{[]byte{0x01, 0xD8}, 0x1000, "add eax, ebx"},
		{[]byte{0x31, 0xC0}, 0x1000, "xor eax, eax"},
		{[]byte{0x48, 0x31, 0xC0}, 0x1000, "xor rax, rax"},
		{[]byte{0x04, 0x05}, 0x1000, "add al, 0x05"},
		{[]byte{0x48, 0x05, 0x10, 0x00, 0x00, 0x00}, 0x1000, "add rax, 0x00000010"},
		{[]byte{0x66, 0x05, 0x10, 0x00}, 0x1000, "add ax, 0x0010"},
		{[]byte{0x48, 0x8D, 0x44, 0x8B, 0x10}, 0x1000, "lea rax, [rbx+rcx*4+16]"},
		{[]byte{0x8B, 0x04, 0x8D, 0x00, 0x00, 0x00, 0x00}, 0x1000, "mov eax, [rcx*4]"},
		{[]byte{0x01, 0x45, 0xFC}, 0x1000, "add [rbp-4], eax"},
		{[]byte{0x45, 0x89, 0xC8}, 0x1000, "mov r8d, r9d"},
		{[]byte{0x0F, 0xB6, 0x07}, 0x1000, "movzx eax, [rdi]"},
		{[]byte{0x48, 0x0F, 0xBE, 0xC3}, 0x1000, "movsx rax, bl"},
		{[]byte{0x0F, 0x94, 0xC0}, 0x1000, "sete al"},
		{[]byte{0x49, 0x0F, 0xC9}, 0x1000, "bswap r9"},
		{[]byte{0x48, 0x0F, 0x44, 0xC3}, 0x1000, "cmove rax, rbx"},
		{[]byte{0xC8, 0x10, 0x00, 0x00}, 0x1000, "enter 0x0010, 0x00"},
		{[]byte{0xD6}, 0x1000, "db 0xd6"},
		{[]byte{0xF3, 0x0F, 0x1E, 0xFA}, 0x1000, "endbr64"},
		{[]byte{0x48, 0x0F, 0xA4, 0xC3, 0x04}, 0x1000, "shld rbx, rax, 0x04"},
		{[]byte{0x0F, 0xC1, 0x07}, 0x1000, "xadd [rdi], eax"},
		{[]byte{0x66, 0x90}, 0x1000, "nop"},
		{[]byte{0x91}, 0x1000, "xchg ecx, eax"},
		{[]byte{0x48, 0x97}, 0x1000, "xchg rdi, rax"},
	}

	for _, tc := range tests {
		in := decodeOrFatal(t, tc.code)
		got := in.Format(tc.rip)
		if got != tc.want {
			t.Errorf("format(%x) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

// TestFormatRelativeTargets: branch displacements resolve against the next
// instruction's address.
func TestFormatRelativeTargets(t *testing.T) {
	tests := []struct {
		code []byte
		rip  uint64
		want string
	}{
		{[]byte{0xE8, 0x01, 0x00, 0x00, 0x00}, 0x1000, "call 0x1006"},
		{[]byte{0xEB, 0xFE}, 0x1000, "jmp 0x1000"},
		{[]byte{0x74, 0x10}, 0x401130, "je 0x401142"},
		{[]byte{0x0F, 0x85, 0x00, 0x01, 0x00, 0x00}, 0x2000, "jne 0x2106"},
		{[]byte{0xE9, 0xFB, 0xFF, 0xFF, 0xFF}, 0x1000, "jmp 0x1000"},
	}
	for _, tc := range tests {
		in := decodeOrFatal(t, tc.code)
		got := in.Format(tc.rip)
		if got != tc.want {
			t.Errorf("format(%x) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestRegName(t *testing.T) {
	tests := []struct {
		idx   uint8
		width int
		rex   bool
		want  string
	}{
		{0, 64, false, "rax"},
		{5, 64, true, "rbp"},
		{8, 64, true, "r8"},
		{15, 64, true, "r15"},
		{0, 32, false, "eax"},
		{12, 32, true, "r12d"},
		{3, 16, false, "bx"},
		{10, 16, true, "r10w"},
		// The 8-bit bank switch: without REX, 4-7 are the high-byte
		// registers; with any REX they become the new low-byte names.
		{4, 8, false, "ah"},
		{4, 8, true, "spl"},
		{7, 8, false, "bh"},
		{7, 8, true, "dil"},
		{14, 8, true, "r14b"},
	}
	for _, tc := range tests {
		got := RegName(tc.idx, tc.width, tc.rex)
		if got != tc.want {
			t.Errorf("RegName(%d, %d, %v) = %q, want %q", tc.idx, tc.width, tc.rex, got, tc.want)
		}
	}
}

func TestFormatLine(t *testing.T) {
	code := []byte{0x48, 0x89, 0xE5}
	in := decodeOrFatal(t, code)
	line := in.FormatLine(code, 0x401130)

	if !strings.HasPrefix(line, "0000000000401130:  ") {
		t.Errorf("address column wrong: %q", line)
	}
	if !strings.Contains(line, "48 89 e5") {
		t.Errorf("bytes column wrong: %q", line)
	}
	if !strings.HasSuffix(line, "mov rbp, rsp") {
		t.Errorf("body wrong: %q", line)
	}
}

func TestFormatLinePadsBytesColumn(t *testing.T) {
	short := decodeOrFatal(t, []byte{0xC3})
	long := decodeOrFatal(t, []byte{0x48, 0xB8, 1, 2, 3, 4, 5, 6, 7, 8})

	a := short.FormatLine([]byte{0xC3}, 0)
	b := long.FormatLine([]byte{0x48, 0xB8, 1, 2, 3, 4, 5, 6, 7, 8}, 0)

	// Both bodies start at the same column.
	ai := strings.Index(a, "ret")
	bi := strings.Index(b, "mov")
	if ai != bi {
		t.Errorf("body columns differ: %d vs %d\n%q\n%q", ai, bi, a, b)
	}
}
