// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

var frontends = []string{
	options.FrontendAuto,
	options.FrontendEbiten,
	options.FrontendTerminal,
	options.FrontendHeadless,
}

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {} // printed by UsageError.ShowUsage
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		usageErr := &UsageError{flags: flags}
		if err != nil && !errors.Is(err, flag.ErrHelp) {
			usageErr.msg = err.Error()
		}
		return opts, usageErr
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontends, ", "))
	}

	if opts.InstructionsPerSecond < vm.TimerFrequency {
		return fmt.Errorf("instructions per second must be at least %d", vm.TimerFrequency)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale factor %d", opts.Scale)
	}

	if _, err := opts.ResolveQuirks(); err != nil {
		return fmt.Errorf("invalid quirks: %w", err)
	}
	if _, err := opts.ResolvePalette(); err != nil {
		return fmt.Errorf("invalid colors: %w", err)
	}
	if _, err := opts.ParseBreakpoints(); err != nil {
		return fmt.Errorf("invalid breakpoints: %w", err)
	}
	if _, _, err := opts.ParseDump(); err != nil {
		return fmt.Errorf("invalid dump range: %w", err)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Frontend, "f", options.FrontendAuto, "frontend to use (auto/ebiten/terminal/headless)")
	flags.IntVar(&opts.InstructionsPerSecond, "ips", 700, "number of instructions to execute per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 picks a random seed")
	flags.Uint64Var(&opts.Frames, "frames", 0, "number of frames to run before stopping, 0 runs until quit (headless default: 600)")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated list of addresses to stop execution at, for example $200,$2A4")
	flags.BoolVar(&opts.Disassemble, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.StringVar(&opts.Dump, "dump", "", "memory range start:end to dump after the run, for example $200:$300")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.StringVar(&opts.Quirks, "quirks", options.QuirksCOSMAC, "quirk preset to emulate (cosmac/modern)")
	flags.StringVar(&opts.ShiftUsesVY, "shift-vy", "", "override: shift instructions use VY as source (true/false)")
	flags.StringVar(&opts.IndexIncrement, "index-inc", "", "override: register store and load increment I (true/false)")
	flags.StringVar(&opts.LogicResetsVF, "vf-reset", "", "override: logic instructions reset VF (true/false)")

	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor of the ebiten frontend")
	flags.StringVar(&opts.Foreground, "fg", "white", "foreground color name")
	flags.StringVar(&opts.Background, "bg", "black", "background color name")
}
