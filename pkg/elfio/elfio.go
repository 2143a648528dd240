// Package elfio extracts function symbols and their code bytes from 64-bit
// little-endian ELF files. The decoder never touches a file: everything it
// sees comes out of here as (name, virtual address, byte slice) triples.
package elfio

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Binject/debug/elf"

	"github.com/CosinusTic/GandELF/pkg/log"
)

var (
	// ErrNotELF: the file does not begin with 7F 45 4C 46.
	ErrNotELF = errors.New("not an ELF file")
	// ErrMissingSection: no .text or no symbol table.
	ErrMissingSection = errors.New("missing section")
	// ErrNoSymbol: the requested symbol is not a text function.
	ErrNoSymbol = errors.New("no such text function")
)

var elfioLog = log.Named("elfio")

// Func is one FUNC symbol resolved inside the executable text section.
// Bytes aliases the loaded file image; treat it as read-only.
type Func struct {
	Name  string
	Addr  uint64
	Bytes []byte
}

// File is a loaded ELF64 image.
type File struct {
	Path string

	raw []byte
	elf *elf.File
}

// Info is the header summary shown by the file-info report.
type Info struct {
	Class   string
	Data    string
	OSABI   string
	Type    string
	Machine string
	Entry   uint64
}

// Load reads path and parses it as a 64-bit ELF. The magic is checked by
// hand before the parser runs so a non-ELF input is reported as ErrNotELF,
// not as a parse error.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < 4 || !bytes.Equal(raw[:4], []byte{0x7F, 'E', 'L', 'F'}) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotELF)
	}
	f, err := elf.NewFile(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Class != elf.ELFCLASS64 {
		return nil, fmt.Errorf("%s: %s: only 64-bit ELF is supported", path, f.Class)
	}
	elfioLog.Debugf("loaded %s: %d bytes, %d sections", path, len(raw), len(f.Sections))
	return &File{Path: path, raw: raw, elf: f}, nil
}

// Info returns the header summary.
func (f *File) Info() Info {
	return Info{
		Class:   f.elf.Class.String(),
		Data:    f.elf.Data.String(),
		OSABI:   f.elf.OSABI.String(),
		Type:    f.elf.Type.String(),
		Machine: f.elf.Machine.String(),
		Entry:   f.elf.Entry,
	}
}

// ELF exposes the parsed image for header reporting.
func (f *File) ELF() *elf.File { return f.elf }

// TextFuncs returns every FUNC symbol of non-zero size that lives inside
// .text, in symbol-table order. Symbols whose byte range overflows the
// section or the file are skipped, not fatal.
func (f *File) TextFuncs() ([]Func, error) {
	text := f.elf.Section(".text")
	if text == nil {
		return nil, fmt.Errorf("%s: .text: %w", f.Path, ErrMissingSection)
	}
	var textIdx elf.SectionIndex
	for i, s := range f.elf.Sections {
		if s == text {
			textIdx = elf.SectionIndex(i)
			break
		}
	}

	syms, err := f.elf.Symbols()
	if err != nil {
		return nil, fmt.Errorf("%s: symbol table: %w", f.Path, ErrMissingSection)
	}

	var funcs []Func
	for _, s := range syms {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Section != textIdx || s.Size == 0 {
			continue
		}
		if s.Value < text.Addr || s.Value+s.Size > text.Addr+text.Size {
			elfioLog.Warnf("skipping %s: range %#x+%d overflows .text", s.Name, s.Value, s.Size)
			continue
		}
		off := text.Offset + (s.Value - text.Addr)
		if off+s.Size > uint64(len(f.raw)) {
			elfioLog.Warnf("skipping %s: range %#x+%d overflows the file", s.Name, s.Value, s.Size)
			continue
		}
		funcs = append(funcs, Func{
			Name:  s.Name,
			Addr:  s.Value,
			Bytes: f.raw[off : off+s.Size],
		})
	}
	return funcs, nil
}

// TextFunc returns the named text function.
func (f *File) TextFunc(name string) (Func, error) {
	funcs, err := f.TextFuncs()
	if err != nil {
		return Func{}, err
	}
	for _, fn := range funcs {
		if fn.Name == name {
			return fn, nil
		}
	}
	return Func{}, fmt.Errorf("%s: %q: %w", f.Path, name, ErrNoSymbol)
}
