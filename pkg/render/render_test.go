package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/CosinusTic/GandELF/pkg/config"
	"github.com/CosinusTic/GandELF/pkg/disas"
	"github.com/CosinusTic/GandELF/pkg/elfio"
)

func plainPrinter(buf *bytes.Buffer) *Printer {
	opts := config.Default()
	opts.Color = false
	return New(buf, opts)
}

func TestFileInfo(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)
	p.FileInfo(elfio.Info{
		Class:   "ELFCLASS64",
		Data:    "ELFDATA2LSB",
		OSABI:   "ELFOSABI_NONE",
		Type:    "ET_EXEC",
		Machine: "EM_X86_64",
		Entry:   0x401000,
	})

	out := buf.String()
	for _, want := range []string{"ELFCLASS64", "ET_EXEC", "EM_X86_64", "0x401000"} {
		if !strings.Contains(out, want) {
			t.Errorf("file info missing %q:\n%s", want, out)
		}
	}
}

func TestHexdump(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)
	p.Hexdump(elfio.Func{
		Name:  "blob",
		Addr:  0x401000,
		Bytes: []byte("ABC\x00DEFGHIJKLMNOPQR"),
	})

	out := buf.String()
	if !strings.Contains(out, "blob (19 bytes):") {
		t.Errorf("banner missing:\n%s", out)
	}
	if !strings.Contains(out, "41 42 43 00") {
		t.Errorf("hex column missing:\n%s", out)
	}
	if !strings.Contains(out, "|ABC.DEFGHIJKLMNO|") {
		t.Errorf("ascii gutter wrong:\n%s", out)
	}
	// Second row holds the 3-byte tail.
	if !strings.Contains(out, "|PQR|") {
		t.Errorf("tail row wrong:\n%s", out)
	}
}

func TestDisassemblyListing(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)

	res := disas.Sweep(elfio.Func{
		Name:  "frame",
		Addr:  0x401000,
		Bytes: []byte{0x55, 0x48, 0x89, 0xE5, 0x5D, 0xC3},
	})
	p.Disassembly(res)

	out := buf.String()
	for _, want := range []string{
		"frame (6 bytes):",
		"0000000000401000:",
		"push rbp",
		"mov rbp, rsp",
		"ret",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "stopped:") {
		t.Errorf("clean sweep reported a stop:\n%s", out)
	}
}

func TestDisassemblyReportsStop(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)

	res := disas.Sweep(elfio.Func{
		Name:  "broken",
		Addr:  0x1000,
		Bytes: []byte{0x90, 0xD8, 0xC1},
	})
	p.Disassembly(res)

	out := buf.String()
	if !strings.Contains(out, "nop") {
		t.Errorf("decoded prefix missing:\n%s", out)
	}
	if !strings.Contains(out, "stopped:") {
		t.Errorf("stop not reported:\n%s", out)
	}
}

func TestHexBytesTruncates(t *testing.T) {
	raw := bytes.Repeat([]byte{0xAA}, 12)
	got := hexBytes(raw, 8)
	if got != "aa aa aa aa aa aa aa aa" {
		t.Errorf("hexBytes = %q", got)
	}
}
