// Package disas drives the decoder over whole symbols: one linear sweep per
// function, fanned out over a worker pool when dumping a full binary.
package disas

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/CosinusTic/GandELF/pkg/elfio"
	"github.com/CosinusTic/GandELF/pkg/log"
	"github.com/CosinusTic/GandELF/pkg/x86"
)

var sweepLog = log.Named("disas")

// Line is one decoded instruction inside a symbol.
type Line struct {
	Addr  uint64
	Bytes []byte // raw encoding, aliases the symbol's slice
	Text  string // mnemonic and operands
}

// Result is the linear sweep of one symbol. Err is set when decoding
// stopped early; Lines holds everything decoded before that point.
type Result struct {
	Name       string
	Addr       uint64
	Size       int
	Lines      []Line
	Err        error
	StopOffset int
}

// Sweep decodes fn.Bytes linearly from fn.Addr, advancing by each decoded
// length. A decode failure ends the sweep; the caller moves to the next
// symbol.
func Sweep(fn elfio.Func) Result {
	res := Result{Name: fn.Name, Addr: fn.Addr, Size: len(fn.Bytes)}
	off := 0
	for off < len(fn.Bytes) {
		in, err := x86.Decode(fn.Bytes[off:])
		if err != nil {
			res.Err = fmt.Errorf("at %s+%#x: %w", fn.Name, off, err)
			res.StopOffset = off
			break
		}
		rip := fn.Addr + uint64(off)
		res.Lines = append(res.Lines, Line{
			Addr:  rip,
			Bytes: fn.Bytes[off : off+in.Len],
			Text:  in.Format(rip),
		})
		off += in.Len
	}
	return res
}

// SweepAll disassembles funcs on a worker pool and returns results in input
// order. Workers share nothing but the immutable opcode tables, so the
// sweeps need no coordination beyond the index channel.
func SweepAll(funcs []elfio.Func, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(funcs) {
		workers = len(funcs)
	}

	results := make([]Result, len(funcs))
	ch := make(chan int, len(funcs))
	for i := range funcs {
		ch <- i
	}
	close(ch)

	var wg sync.WaitGroup
	var done atomic.Int64
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range ch {
				results[i] = Sweep(funcs[i])
				done.Add(1)
			}
		}()
	}
	wg.Wait()

	sweepLog.Debugf("disassembled %d symbols on %d workers", done.Load(), workers)
	return results
}
