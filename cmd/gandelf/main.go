package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CosinusTic/GandELF/pkg/config"
	"github.com/CosinusTic/GandELF/pkg/disas"
	"github.com/CosinusTic/GandELF/pkg/elfio"
	"github.com/CosinusTic/GandELF/pkg/log"
	"github.com/CosinusTic/GandELF/pkg/render"
)

// all is the NoOptDefVal sentinel: -x / -d without a name dump every text
// function.
const all = "*"

func main() {
	var (
		showInfo    bool
		showHeaders bool
		hexSym      string
		disSym      string
		noColor     bool
		cfgPath     string
		workers     int
		verbose     bool
	)

	rootCmd := &cobra.Command{
		Use:   "gandelf <elf-file> [name]",
		Short: "Static ELF64/x86-64 binary inspector",
		Long: `gandelf inspects 64-bit ELF binaries: header summaries, hexdumps and a
linear-sweep x86-64 disassembly of the text-section function symbols.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetVerbose(verbose)

			opts, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if noColor {
				opts.Color = false
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			hexSet := cmd.Flags().Changed("hexdump")
			disSet := cmd.Flags().Changed("disas")
			if !showInfo && !showHeaders && !hexSet && !disSet {
				return fmt.Errorf("nothing to do: pass -f, -h, -x or -d")
			}

			// A second positional argument names the symbol when -x/-d was
			// given bare ("gandelf ./bin -d main").
			if len(args) == 2 {
				if hexSet && hexSym == all {
					hexSym = args[1]
				}
				if disSet && disSym == all {
					disSym = args[1]
				}
			}

			f, err := elfio.Load(args[0])
			if err != nil {
				return err
			}
			p := render.New(os.Stdout, opts)

			if showInfo {
				p.FileInfo(f.Info())
			}
			if showHeaders {
				p.Headers(f)
			}
			if hexSet {
				funcs, err := selectFuncs(f, hexSym)
				if err != nil {
					return err
				}
				for _, fn := range funcs {
					p.Hexdump(fn)
				}
			}
			if disSet {
				funcs, err := selectFuncs(f, disSym)
				if err != nil {
					return err
				}
				for _, res := range disas.SweepAll(funcs, opts.Workers) {
					p.Disassembly(res)
				}
			}
			return nil
		},
	}

	// -h is the header summary, as in the original tool; registering a
	// shorthand-less --help keeps the letter free for it.
	rootCmd.Flags().Bool("help", false, "help for gandelf")
	rootCmd.Flags().BoolVarP(&showInfo, "file-info", "f", false, "print ELF file info (class, OS ABI, type)")
	rootCmd.Flags().BoolVarP(&showHeaders, "headers", "h", false, "print program and section header summaries")
	rootCmd.Flags().StringVarP(&hexSym, "hexdump", "x", "", "hex-dump symbol `name`, or all text functions")
	rootCmd.Flags().StringVarP(&disSym, "disas", "d", "", "disassemble symbol `name`, or all text functions")
	rootCmd.Flags().Lookup("hexdump").NoOptDefVal = all
	rootCmd.Flags().Lookup("disas").NoOptDefVal = all
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	rootCmd.Flags().StringVar(&cfgPath, "config", "", "YAML output preferences file")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "sweep worker count (0 = NumCPU)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// selectFuncs resolves the -x/-d argument: empty or "*" means every text
// function, anything else one named symbol.
func selectFuncs(f *elfio.File, sym string) ([]elfio.Func, error) {
	if sym == "" || sym == all {
		return f.TextFuncs()
	}
	fn, err := f.TextFunc(sym)
	if err != nil {
		return nil, err
	}
	return []elfio.Func{fn}, nil
}
