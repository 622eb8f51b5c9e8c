// Package pipeline orchestrates loading, configuring and running a ROM.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/ebiten"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete workflow of running a ROM.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Session contains all components that are set up to run a ROM.
type Session struct {
	Logger   *log.Logger
	VM       *vm.VM
	Machine  *machine.Machine
	Surface  *display.Surface
	Keypad   *keypad.Keypad
	Frontend string
}

// Execute loads the ROM and either prints its disassembly or runs it with the
// selected frontend. A requested memory dump is written to the writer after
// the run, even if the run stopped with an error.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disassemble {
		if err := disasm.WriteListing(writer, rom); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	session, err := p.Setup(opts, rom)
	if err != nil {
		return fmt.Errorf("setting up machine: %w", err)
	}

	p.printInfo(opts, rom, session)

	fe, err := p.createFrontend(opts, session, writer)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	runErr := fe.Run(ctx)

	if err := p.dumpMemory(opts, session.VM, writer); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("running ROM: %w", runErr)
	}
	return nil
}

// Setup creates the virtual machine with the ROM loaded and its driver.
func (p *Pipeline) Setup(opts options.Program, rom []byte) (*Session, error) {
	quirks, err := opts.ResolveQuirks()
	if err != nil {
		return nil, fmt.Errorf("resolving quirks: %w", err)
	}
	breakpoints, err := opts.ParseBreakpoints()
	if err != nil {
		return nil, fmt.Errorf("parsing breakpoints: %w", err)
	}

	frontendName := p.detector.Detect(opts)
	logger := p.sessionLogger(frontendName)

	surface := display.New()
	keys := keypad.New()

	v := vm.New(logger, surface, keys, vm.Config{
		Quirks: quirks,
		Trace:  opts.Trace,
		Seed:   opts.Seed,
	})
	if err := v.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("loading ROM into memory: %w", err)
	}

	m, err := machine.New(logger, v, machine.Config{
		InstructionsPerSecond: opts.InstructionsPerSecond,
		Breakpoints:           breakpoints,
	})
	if err != nil {
		return nil, fmt.Errorf("creating machine: %w", err)
	}

	return &Session{
		Logger:   logger,
		VM:       v,
		Machine:  m,
		Surface:  surface,
		Keypad:   keys,
		Frontend: frontendName,
	}, nil
}

// sessionLogger returns the logger for the components of a session. The
// terminal frontend draws on stdout, which is shared with the log output, so
// only errors are logged while it runs.
func (p *Pipeline) sessionLogger(frontendName string) *log.Logger {
	if frontendName != options.FrontendTerminal {
		return p.logger
	}
	return config.CreateLogger(options.Flags{Quiet: true})
}

// createFrontend creates the frontend that was selected for the session.
func (p *Pipeline) createFrontend(opts options.Program, session *Session, writer io.Writer) (frontend.Frontend, error) {
	palette, err := opts.ResolvePalette()
	if err != nil {
		return nil, fmt.Errorf("resolving palette: %w", err)
	}

	cfg := frontend.Config{
		Logger:  session.Logger,
		Machine: session.Machine,
		Surface: session.Surface,
		Keypad:  session.Keypad,
		Layout:  keypad.COSMACLayout,
		Palette: palette,
		Output:  writer,
		Title:   windowTitle(opts.Input),
		Scale:   opts.Scale,
		Frames:  opts.Frames,
	}

	switch session.Frontend {
	case options.FrontendEbiten:
		return ebiten.New(cfg), nil
	case options.FrontendTerminal:
		return terminal.New(cfg), nil
	case options.FrontendHeadless:
		return headless.New(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", session.Frontend)
	}
}

// dumpMemory writes the requested memory range.
func (p *Pipeline) dumpMemory(opts options.Program, v *vm.VM, writer io.Writer) error {
	memRange, ok, err := opts.ParseDump()
	if err != nil {
		return fmt.Errorf("parsing dump range: %w", err)
	}
	if !ok {
		return nil
	}

	p.logger.Debug("Dumping memory",
		log.Hex("start", memRange.Start),
		log.Hex("end", memRange.End))
	if err := v.DumpMemory(writer, memRange.Start, memRange.End); err != nil {
		return fmt.Errorf("dumping memory: %w", err)
	}
	return nil
}

// printInfo prints information about the ROM being run.
func (p *Pipeline) printInfo(opts options.Program, rom []byte, session *Session) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.String("frontend", session.Frontend),
		log.Int("ips", session.Machine.InstructionsPerSecond()),
	)
}

func windowTitle(input string) string {
	return "retrochip8 - " + filepath.Base(input)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
