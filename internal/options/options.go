// Package options contains the program options.
package options

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
	"golang.org/x/image/colornames"
)

// Frontend names.
const (
	FrontendAuto     = "auto"
	FrontendEbiten   = "ebiten"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Quirk preset names.
const (
	QuirksCOSMAC = "cosmac"
	QuirksModern = "modern"
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend              string `flag:"f" usage:"frontend: auto, ebiten, terminal, headless" default:"auto"`
	InstructionsPerSecond int    `flag:"ips" usage:"instructions executed per second" default:"700"`
	Seed                  uint64 `flag:"seed" usage:"random number generator seed (0: random)"`
	Frames                uint64 `flag:"frames" usage:"number of frames to run (0: unlimited)"`
	Breakpoints           string `flag:"break" usage:"comma separated breakpoint addresses"`
	Disassemble           bool   `flag:"disasm" usage:"print a disassembly listing of the ROM and exit"`
	Dump                  string `flag:"dump" usage:"memory range start:end to dump after the run"`
	Trace                 bool   `flag:"trace" usage:"log every executed instruction"`
	Debug                 bool   `flag:"debug" usage:"enable debug logging"`
	Quiet                 bool   `flag:"q" usage:"quiet mode"`
}

// QuirkFlags contains the quirk preset and its per quirk overrides.
// Overrides are tri-state: empty keeps the preset value.
type QuirkFlags struct {
	Quirks         string `flag:"quirks" usage:"quirk preset: cosmac, modern" default:"cosmac"`
	ShiftUsesVY    string `flag:"shift-vy" usage:"8XY6/8XYE shift VY into VX (true/false)"`
	IndexIncrement string `flag:"index-inc" usage:"FX55/FX65 increment I (true/false)"`
	LogicResetsVF  string `flag:"vf-reset" usage:"8XY1/8XY2/8XY3 reset VF (true/false)"`
}

// DisplayFlags contains presentation options.
type DisplayFlags struct {
	Scale      int    `flag:"scale" usage:"window scale factor" default:"10"`
	Foreground string `flag:"fg" usage:"foreground color name" default:"white"`
	Background string `flag:"bg" usage:"background color name" default:"black"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	QuirkFlags
	DisplayFlags
}

// Palette contains the resolved display colors.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

// MemoryRange is a half open address range [Start, End).
type MemoryRange struct {
	Start uint16
	End   uint16
}

// ResolveQuirks returns the quirk preset with all overrides applied.
func (q QuirkFlags) ResolveQuirks() (vm.Quirks, error) {
	var quirks vm.Quirks
	switch strings.ToLower(q.Quirks) {
	case QuirksCOSMAC, "":
		quirks = vm.QuirksCOSMAC
	case QuirksModern:
		quirks = vm.QuirksModern
	default:
		return vm.Quirks{}, fmt.Errorf("unsupported quirk preset '%s'", q.Quirks)
	}

	overrides := []struct {
		name  string
		value string
		quirk *bool
	}{
		{"shift-vy", q.ShiftUsesVY, &quirks.ShiftUsesVY},
		{"index-inc", q.IndexIncrement, &quirks.IndexIncrement},
		{"vf-reset", q.LogicResetsVF, &quirks.LogicResetsVF},
	}
	for _, override := range overrides {
		if override.value == "" {
			continue
		}
		enabled, err := strconv.ParseBool(override.value)
		if err != nil {
			return vm.Quirks{}, fmt.Errorf("parsing quirk %s value '%s': %w", override.name, override.value, err)
		}
		*override.quirk = enabled
	}

	return quirks, nil
}

// ResolvePalette returns the colors for the configured color names.
func (d DisplayFlags) ResolvePalette() (Palette, error) {
	fg, err := parseColor(d.Foreground, colornames.White)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing foreground color: %w", err)
	}
	bg, err := parseColor(d.Background, colornames.Black)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing background color: %w", err)
	}
	return Palette{Foreground: fg, Background: bg}, nil
}

func parseColor(name string, fallback color.RGBA) (color.RGBA, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fallback, nil
	}
	c, ok := colornames.Map[name]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color name '%s'", name)
	}
	return c, nil
}

// ParseBreakpoints parses the comma separated breakpoint address list.
func (f Flags) ParseBreakpoints() ([]uint16, error) {
	if strings.TrimSpace(f.Breakpoints) == "" {
		return nil, nil
	}

	var addresses []uint16
	for s := range strings.SplitSeq(f.Breakpoints, ",") {
		address, err := ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint: %w", err)
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

// ParseDump parses the memory dump range. The second return value is false
// if no dump is requested.
func (f Flags) ParseDump() (MemoryRange, bool, error) {
	if strings.TrimSpace(f.Dump) == "" {
		return MemoryRange{}, false, nil
	}

	startStr, endStr, ok := strings.Cut(f.Dump, ":")
	if !ok {
		return MemoryRange{}, false, fmt.Errorf("invalid dump range '%s', expected start:end", f.Dump)
	}

	start, err := ParseAddress(startStr)
	if err != nil {
		return MemoryRange{}, false, fmt.Errorf("parsing dump start: %w", err)
	}
	end := uint16(vm.MemorySize)
	if strings.TrimSpace(endStr) != "" {
		end, err = parseValue(endStr, vm.MemorySize)
		if err != nil {
			return MemoryRange{}, false, fmt.Errorf("parsing dump end: %w", err)
		}
	}
	if start >= end {
		return MemoryRange{}, false, fmt.Errorf("invalid dump range '%s', start must be below end", f.Dump)
	}

	return MemoryRange{Start: start, End: end}, true, nil
}

// ParseAddress parses a memory address. Hexadecimal addresses can be given
// with a $ or 0x prefix, all other values are parsed as decimal.
func ParseAddress(s string) (uint16, error) {
	return parseValue(s, vm.MaxAddress)
}

func parseValue(s string, maxValue uint64) (uint16, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s = s[1:]
		base = 16
	case strings.HasPrefix(s, "0x"):
		s = s[2:]
		base = 16
	}

	value, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s': %w", s, err)
	}
	if value > maxValue {
		return 0, fmt.Errorf("address $%X exceeds $%X", value, maxValue)
	}
	return uint16(value), nil
}
