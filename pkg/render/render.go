// Package render formats inspector output for the terminal: header
// summaries, hexdumps and disassembly listings.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/CosinusTic/GandELF/pkg/config"
	"github.com/CosinusTic/GandELF/pkg/disas"
	"github.com/CosinusTic/GandELF/pkg/elfio"
)

// Printer renders reports to one writer with a fixed set of preferences.
type Printer struct {
	w    io.Writer
	opts config.Output

	sym  *color.Color
	addr *color.Color
	mn   *color.Color
	bad  *color.Color
}

// New builds a Printer. Color is a process-wide switch in the color
// package, so disabling it here disables it everywhere.
func New(w io.Writer, opts config.Output) *Printer {
	if !opts.Color {
		color.NoColor = true
	}
	return &Printer{
		w:    w,
		opts: opts,
		sym:  color.New(color.FgGreen, color.Bold),
		addr: color.New(color.FgCyan),
		mn:   color.New(color.FgYellow),
		bad:  color.New(color.FgRed),
	}
}

// FileInfo prints the ELF header summary.
func (p *Printer) FileInfo(info elfio.Info) {
	rows := []struct{ k, v string }{
		{"Class", info.Class},
		{"Data", info.Data},
		{"OS ABI", info.OSABI},
		{"Type", info.Type},
		{"Machine", info.Machine},
		{"Entry", fmt.Sprintf("%#x", info.Entry)},
	}
	for _, r := range rows {
		fmt.Fprintf(p.w, "%-10s %s\n", r.k+":", r.v)
	}
}

// Headers prints program and section header summaries as tables.
func (p *Printer) Headers(f *elfio.File) {
	e := f.ELF()

	if len(e.Progs) > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(p.w)
		tw.SetTitle("Program headers")
		tw.AppendHeader(table.Row{"Type", "Flags", "Offset", "VirtAddr", "FileSiz", "MemSiz"})
		for _, ph := range e.Progs {
			tw.AppendRow(table.Row{
				ph.Type.String(),
				ph.Flags.String(),
				fmt.Sprintf("%#x", ph.Off),
				fmt.Sprintf("%#x", ph.Vaddr),
				fmt.Sprintf("%#x", ph.Filesz),
				fmt.Sprintf("%#x", ph.Memsz),
			})
		}
		tw.Render()
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(p.w)
	tw.SetTitle("Section headers")
	tw.AppendHeader(table.Row{"Name", "Type", "Addr", "Offset", "Size"})
	for _, sh := range e.Sections {
		tw.AppendRow(table.Row{
			sh.Name,
			sh.Type.String(),
			fmt.Sprintf("%#x", sh.Addr),
			fmt.Sprintf("%#x", sh.Offset),
			fmt.Sprintf("%#x", sh.Size),
		})
	}
	tw.Render()
}

// Hexdump prints a symbol's bytes, HexWidth per row, with an ASCII gutter.
func (p *Printer) Hexdump(fn elfio.Func) {
	fmt.Fprintf(p.w, "%s %s (%d bytes):\n",
		p.addr.Sprintf("%016x", fn.Addr), p.sym.Sprint(fn.Name), len(fn.Bytes))

	width := p.opts.HexWidth
	for off := 0; off < len(fn.Bytes); off += width {
		end := off + width
		if end > len(fn.Bytes) {
			end = len(fn.Bytes)
		}
		row := fn.Bytes[off:end]

		var hexCol strings.Builder
		for _, b := range row {
			fmt.Fprintf(&hexCol, "%02x ", b)
		}
		fmt.Fprintf(p.w, "  %08x  %-*s %s\n", off, width*3, hexCol.String(), ascii(row))
	}
}

// Disassembly prints one symbol's sweep. A decode failure is reported after
// the lines that did decode; it never aborts the whole dump.
func (p *Printer) Disassembly(res disas.Result) {
	fmt.Fprintf(p.w, "%s %s (%d bytes):\n",
		p.addr.Sprintf("%016x", res.Addr), p.sym.Sprint(res.Name), res.Size)

	for _, ln := range res.Lines {
		fmt.Fprintf(p.w, "  %s:  %-*s %s\n",
			p.addr.Sprintf("%016x", ln.Addr),
			p.opts.BytesWidth*3, hexBytes(ln.Bytes, p.opts.BytesWidth),
			p.colorBody(ln.Text))
	}
	if res.Err != nil {
		fmt.Fprintf(p.w, "  %s\n", p.bad.Sprintf("stopped: %v", res.Err))
	}
	fmt.Fprintln(p.w)
}

// hexBytes renders up to max raw bytes, space-separated.
func hexBytes(raw []byte, max int) string {
	var b strings.Builder
	for i, v := range raw {
		if i == max {
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", v)
	}
	return b.String()
}

// colorBody highlights the mnemonic, leaving operands plain.
func (p *Printer) colorBody(text string) string {
	mn, rest, found := strings.Cut(text, " ")
	if !found {
		return p.mn.Sprint(text)
	}
	return p.mn.Sprint(mn) + " " + rest
}

func ascii(row []byte) string {
	var b strings.Builder
	b.WriteByte('|')
	for _, c := range row {
		if c >= 0x20 && c < 0x7F {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteByte('|')
	return b.String()
}
